/*
 * @author: gang678
 * @date: 2026.10.17
 * @description: 学生档案服务命令行入口
 */

package main

func main() {
	Execute()
}
