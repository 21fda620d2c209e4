package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/bitmark-inc/autonomy-cases/consts"
	"github.com/bitmark-inc/autonomy-cases/dataset"
	"github.com/bitmark-inc/autonomy-cases/external/fetcher"
)

var views = map[string]string{
	"national": consts.AreaTypeNation,
	"regional": consts.AreaTypeRegion,
	"utla":     consts.AreaTypeUTLA,
}

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("autonomy")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func loadConfig(file string) {
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		viper.AllowEmptyEnv(false)
	}

	viper.SetDefault("cases.filter_data", true)
}

func main() {
	var configFile, view, name, format string
	var noFilter bool

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.StringVar(&view, "view", "national", "geography view: national, regional or utla")
	flag.StringVar(&name, "name", "", "[optional] only rows of this area")
	flag.StringVar(&format, "format", formatTable, fmt.Sprintf("output format, one of %v", formats))
	flag.BoolVar(&noFilter, "no-filter", false, "keep recent and low count rows")
	flag.Parse()

	loadConfig(configFile)

	// logs go to stderr, stdout carries the view
	log.SetOutput(os.Stderr)
	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
	if level, err := log.ParseLevel(viper.GetString("log.level")); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	areaType, ok := views[view]
	if !ok {
		log.WithField("prefix", "cases").Fatalf("unknown view %q", view)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	d, err := dataset.New(
		ctx,
		fetcher.New(&http.Client{}),
		viper.GetString("cases.url"),
		viper.GetStringSlice("cases.date_cols"),
		viper.GetBool("cases.filter_data") && !noFilter,
	)
	if err != nil {
		log.WithField("prefix", "cases").Fatal(err)
	}

	t, err := d.View(areaType, name)
	if err != nil {
		log.WithField("prefix", "cases").Fatal(err)
	}

	if err := render(os.Stdout, t, format, time.Now()); err != nil {
		log.WithField("prefix", "cases").Fatal(err)
	}
}
