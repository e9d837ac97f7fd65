package main

import (
	"github.com/santosh-shetty/blog-api/config"
	"github.com/santosh-shetty/blog-api/models"
	"github.com/santosh-shetty/blog-api/routes"
	"github.com/santosh-shetty/blog-api/storage"
	"github.com/santosh-shetty/blog-api/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.Category{}, &models.Post{})

	images, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		utils.Sugar.Fatalf("failed to prepare upload directory: %v", err)
	}

	r := routes.SetupRouter(db, images)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
