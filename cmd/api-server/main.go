package main

import (
	"context"
	"log"
	"net/http"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/wib2/futsal-record/internals/gate"
	"github.com/wib2/futsal-record/internals/state"
	"github.com/wib2/futsal-record/internals/store"
	statesync "github.com/wib2/futsal-record/internals/sync"
	"github.com/wib2/futsal-record/pkg/conf"
	"github.com/wib2/futsal-record/pkg/kvstore"
)

type App struct {
	DB       *gorm.DB
	R        *chi.Mux
	WS       map[*websocket.Conn]struct{}
	ClientsM sync.Mutex
	KVStore  kvstore.KVStore
	Ch       *amqp.Channel
	Cfg      *viper.Viper
	Syncer   *statesync.Syncer
	Gate     *gate.Service
}

func main() {
	cfg := conf.Config(".")

	app := &App{
		WS:  make(map[*websocket.Conn]struct{}),
		Cfg: cfg,
	}

	app.initKVStore()
	app.Gate = gate.New(app.KVStore, cfg.GetString("gate.token_secret"))
	mirror := store.NewMirror(app.KVStore)

	// Remote pieces are optional: Postgres or RabbitMQ being down means
	// local-only operation, never a refused boot.
	remote := app.initRemote(mirror)

	initial := loadInitial(remote, mirror)
	clientID := statesync.LoadClientID(app.KVStore)
	app.Syncer = statesync.New(initial, remote, mirror, clientID, statesync.SaveDebounce)
	app.Syncer.OnChange(app.BroadcastState)

	if _, err := app.Syncer.Start(); err != nil {
		log.Printf("remote subscribe unavailable: %v", err)
	}

	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.GetString("http.origin")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	app.R = r
	app.initHandlers()

	addr := ":" + cfg.GetString("http.port")
	log.Printf("futsal record server listening on %s (client %s)", addr, clientID)
	if err := http.ListenAndServe(addr, r); err != nil {
		panic(err)
	}
}

// initRemote wires Postgres + the fanout exchange. Either failing drops us
// back to the Redis mirror, logged once.
func (app *App) initRemote(mirror *store.Mirror) store.Store {
	db, err := app.initDB()
	if err != nil {
		log.Printf("remote store unavailable: %v (running local-only)", err)
		return nil
	}
	app.DB = db

	var fanout *store.Fanout
	conn, err := amqp.Dial(app.Cfg.GetString("amqp.url"))
	if err != nil {
		log.Printf("broker unavailable: %v (no cross-instance push)", err)
	} else {
		ch, err := conn.Channel()
		if err != nil {
			log.Printf("broker channel failed: %v (no cross-instance push)", err)
		} else {
			app.Ch = ch
			fanout, err = store.NewFanout(ch)
			if err != nil {
				log.Printf("fanout declare failed: %v (no cross-instance push)", err)
				fanout = nil
			}
		}
	}

	remote, err := store.NewRemote(db, fanout)
	if err != nil {
		log.Printf("snapshot table unavailable: %v (running local-only)", err)
		return nil
	}
	return remote
}

// loadInitial picks the boot snapshot: remote row, else local mirror, else
// the seeded default registry.
func loadInitial(remote store.Store, mirror *store.Mirror) state.PersistShape {
	if remote != nil {
		env, err := remote.Load(context.Background())
		if err != nil {
			log.Printf("remote load failed: %v", err)
		} else if env != nil {
			return env.State
		}
	}
	if s, err := mirror.Load(); err == nil && s != nil {
		return *s
	}
	log.Println("no stored snapshot found, seeding default roster")
	return state.Seed()
}
