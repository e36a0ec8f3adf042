package main

import (
	"fmt"
	"log"
	"os"

	"vereteno/internal/api"
	"vereteno/internal/config"
	"vereteno/internal/convert"
	"vereteno/internal/names"
	"vereteno/internal/reference"
)

func main() {
	cfg := config.LoadWithPath("config.json")

	// 1. Словарь зарезервированных слов (встроенный + yaml-справочники)
	reserved, err := reference.LoadReservedCatalog(cfg.ReservedDir)
	if err != nil {
		log.Fatalf("Ошибка загрузки справочников: %v", err)
	}
	fmt.Printf("Загружено зарезервированных слов: %d\n", len(reserved))

	// 2. Коллабораторы конвертера
	naming := names.New(reserved)
	conv := convert.New(naming, log.New(os.Stderr, "convert: ", log.LstdFlags))

	// 3. HTTP API
	svc := &api.Service{Conv: conv, Names: naming}
	fmt.Printf("Стартуем сервер Vereteno на :%s...\n", cfg.Port)
	api.RunServer(":"+cfg.Port, svc)
}
