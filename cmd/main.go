package main

import (
	"os"

	// 注册比赛来源（init 中写入适配器注册表）
	_ "CricketSync/internal/adapter/entitysport"
	_ "CricketSync/internal/adapter/seed"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
