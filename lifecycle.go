package main

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bitmark-inc/autonomy-cases/api"
)

// lifecycle holds what the signal handler tears down. main fills it in while
// initializing and the handler may read it at any moment.
type lifecycle struct {
	lock sync.Mutex

	cancelInit   context.CancelFunc
	initializing bool

	server      *api.Server
	mongoClient *mongo.Client
}

func newLifecycle(cancelInit context.CancelFunc) *lifecycle {
	return &lifecycle{
		cancelInit:   cancelInit,
		initializing: true,
	}
}

func (l *lifecycle) setMongoClient(client *mongo.Client) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.mongoClient = client
}

func (l *lifecycle) setServer(server *api.Server) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.server = server
}

// initialized marks the end of initialization, shutdown no longer cancels it
func (l *lifecycle) initialized() {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.initializing = false
}

// shutdown cancels an unfinished initialization, stops the http server and
// disconnects mongo
func (l *lifecycle) shutdown(ctx context.Context) {
	l.lock.Lock()
	cancelInit := l.cancelInit
	initializing := l.initializing
	l.initializing = false
	server := l.server
	mongoClient := l.mongoClient
	l.lock.Unlock()

	if initializing && cancelInit != nil {
		log.Info("Cancelling initialization")
		cancelInit()
	}

	if server != nil {
		log.Info("Shutdown cases api server")
		if err := server.Shutdown(ctx); err != nil {
			log.Error("Server Shutdown:", err)
		}
	}

	if mongoClient != nil {
		log.Info("Shutting down mongo store")
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Error(err)
		}
	}
}
