// @title LearnTrack 后端 API
// @version 1.0
// @description LearnTrack 学习管理平台的后端服务器：课程、报名、作业提交与评分、排名与徽章。

// @contact.name API支持
// @contact.url http://www.swagger.io/support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"learntrack_backend/internal/app"
	"learntrack_backend/internal/config"
	"learntrack_backend/pkg/logger"
)

func main() {
	// 命令行参数
	seedOnly := flag.Bool("seed", false, "只写入示例课程和作业，完成后退出")
	configDir := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.SeedOnly = *seedOnly

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer logger.Log.Sync()

	if *seedOnly {
		application.Close()
		log.Println("示例数据写入完成，退出程序")
		return
	}

	application.WatchConfig(*configDir)
	application.Run()
}
