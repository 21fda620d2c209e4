package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/autonomy-cases/external/fetcher"
	"github.com/bitmark-inc/autonomy-cases/store"
)

const (
	logPrefix       = "cron"
	defaultTimeout  = 15 * time.Second
	defaultKeepDays = 60
)

type Cron interface {
	Run(ctx context.Context) error
}

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("autonomy")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("autonomy")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("cases.filter_data", true)
	viper.SetDefault("cases.keep_days", defaultKeepDays)
}

func main() {
	var configFile string

	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.WithField("prefix", logPrefix).Info("cancelling crawler")
		cancel()
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(ctx)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	mStore := store.NewMongoStore(
		mongoClient,
		viper.GetString("mongo.database"),
	)

	httpClient := &http.Client{
		Timeout: 5 * time.Minute,
	}

	crawler := newCasesCrawler(
		mStore,
		fetcher.New(httpClient),
		viper.GetString("cases.url"),
		viper.GetStringSlice("cases.date_cols"),
		viper.GetBool("cases.filter_data"),
		viper.GetInt("cases.keep_days"),
	)

	runErr := crawler.Run(ctx)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer shutdownCancel()

	log.Info("Shutting down mongo store")
	_ = mongoClient.Disconnect(shutdownCtx)

	if runErr != nil {
		log.WithField("prefix", logPrefix).Error(runErr)
		os.Exit(1)
	}
}
