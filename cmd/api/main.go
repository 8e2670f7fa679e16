package main

import (
	"os"

	"portfoliobacktest/cmd"
	"portfoliobacktest/internal/util"

	"go.uber.org/zap"
)

func main() {
	log := zap.S()
	defer log.Sync()

	log.Infof("starting api, commit %s", os.Getenv("commit_hash"))

	cfg, err := util.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	apiHandler, err := cmd.InitializeDependencies(*cfg)
	if err != nil {
		log.Fatal(err)
	}
	err = apiHandler.StartApi(cfg.Port)
	if err != nil {
		log.Fatal(err)
	}
}
