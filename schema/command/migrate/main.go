package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/bitmark-inc/autonomy-cases/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("autonomy")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	var configFile string

	flag.StringVar(&configFile, "c", "", "[optional] path of configuration file")
	flag.Parse()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println("No config file. Read config from env.")
		}
	}

	indexer := schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database"))
	defer indexer.Close()

	indexer.IndexAll()
	fmt.Printf("indexed collection `%s`\n", schema.CasesCollection)
}
