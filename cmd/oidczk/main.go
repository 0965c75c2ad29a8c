// oidczk 把 OpenID ID token 编码为链上/电路验证方使用的紧凑参数，并提供 PlonK 参数、密钥、证明与验证命令
package main

func main() {
	Execute()
}
