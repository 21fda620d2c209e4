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

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/autonomy-cases/api"
	"github.com/bitmark-inc/autonomy-cases/dataset"
	"github.com/bitmark-inc/autonomy-cases/external/fetcher"
	"github.com/bitmark-inc/autonomy-cases/store"
)

const (
	defaultCacheTTL        = 10 * time.Minute
	defaultRefreshInterval = 6 * time.Hour
)

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
	viper.SetDefault("cases.refresh_interval", defaultRefreshInterval)
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.cache_ttl", defaultCacheTTL)
}

func loadDataset(ctx context.Context, f fetcher.Fetcher) (*dataset.CasesDataset, error) {
	return dataset.New(
		ctx,
		f,
		viper.GetString("cases.url"),
		viper.GetStringSlice("cases.date_cols"),
		viper.GetBool("cases.filter_data"),
	)
}

// refreshDataset downloads the cases csv again every interval and hands it to
// the server. A failed download keeps the previous dataset.
func refreshDataset(ctx context.Context, server *api.Server, f fetcher.Fetcher, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d, err := loadDataset(ctx, f)
			if err != nil {
				log.WithField("prefix", "refresh").Errorf("refresh cases dataset with error: %s", err)
				sentry.CaptureException(err)
				continue
			}
			server.UpdateViewer(d)
			log.WithField("prefix", "refresh").Info("cases dataset refreshed")
		}
	}
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())
	refreshCtx, cancelRefresh := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	lc := newLifecycle(cancelInitialization)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		cancelRefresh()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		lc.shutdown(ctx)

		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	httpClient := &http.Client{
		Timeout: 5 * time.Minute,
	}

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}
	lc.setMongoClient(mongoClient)

	err = mongoClient.Connect(context.Background())
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}
	mStore := store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))

	// Download the cases csv
	casesFetcher := fetcher.New(httpClient)
	d, err := loadDataset(initialCtx, casesFetcher)
	if err != nil {
		log.Panicf("load cases dataset with error: %s", err)
	}
	log.WithField("prefix", "init").Infof("Loaded cases dataset from %s", d.URL())

	// Init http server
	server := api.NewServer(mStore, d, viper.GetDuration("server.cache_ttl"))
	lc.setServer(server)
	log.WithField("prefix", "init").Info("Initialized http server")

	lc.initialized()

	go refreshDataset(refreshCtx, server, casesFetcher, viper.GetDuration("cases.refresh_interval"))

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
