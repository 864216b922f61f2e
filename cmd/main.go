package main

import (
	"log"
	"os"

	"github.com/matchlens/soccer-analytics/pkg/api"
	"github.com/matchlens/soccer-analytics/pkg/config"
	"github.com/matchlens/soccer-analytics/pkg/store"
	"github.com/spf13/viper"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error: Could not read config file, got '%v'", err)
	}

	//first - create project's data root dir
	if _, err := os.Stat(viper.GetString("directory.root")); err != nil {
		if os.IsNotExist(err) {
			if os.Mkdir(viper.GetString("directory.root"), 0766) != nil {
				log.Printf("Error Creating '%s' directory, got '%v'", viper.GetString("directory.root"), err)
			}
		}
	}

	//create missing directories from config file
	for _, dir := range viper.GetStringMap("directory") {
		if _, err := os.Stat(dir.(string)); err != nil {
			if os.IsNotExist(err) {
				if os.Mkdir(dir.(string), 0766) != nil {
					log.Printf("Error Creating '%s' directory, got '%v'", dir.(string), err)
				}
			}
		}
	}

	if viper.GetString("video.prod_format") == "" || viper.GetString("detector.script") == "" || viper.GetString("frontend.static-files-path") == "" {
		log.Fatalf("Error: Missing critical configurations")
	}

	//a bad match section must stop us here - every frame's computation depends on it
	matchCfg, err := config.LoadMatch()
	if err != nil {
		log.Fatalf("Error: Invalid match configuration, got '%v'", err)
	}

	db, err := store.Open(viper.GetString("storage.stats_db"))
	if err != nil {
		log.Fatalf("Error: Could not open stats database, got '%v'", err)
	}
	defer db.Close()

	r := api.SetRouter(matchCfg, db)
	if err := r.Run(":" + viper.GetString("http.port")); err != nil {
		log.Fatalf("Error: Got '%v'", err)
	}
}
