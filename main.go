package main

import (
	"flag"
	"net/http"
	"os"
	"path/filepath"

	"github.com/CodedInternet/gonxt/brick"
	"github.com/CodedInternet/gonxt/comms"
	"github.com/CodedInternet/gonxt/nxt"
	"github.com/CodedInternet/gonxt/transport"
	"github.com/asdine/storm"
	"github.com/caarlos0/env"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type EnvConfig struct {
	JWT_ISSUER string `env:"JWT_ISSUER" envDefault:"DEV"`
	JWT_SECRET string `env:"JWT_SECRET"`
	DEBUG      bool   `env:"DEBUG" envDefault:"false"`
	CONFIG     string `env:"NXT_CONFIG" envDefault:"./nxt.yaml"`
	DBFILE     string `env:"NXT_DB" envDefault:"./tmp/dev.db"`
	LISTEN     string `env:"NXT_LISTEN" envDefault:"0.0.0.0:8080"`
	AMQP       string `env:"NXT_AMQP"`
	AMQP_CTRL  string `env:"NXT_AMQP_CONTROL" envDefault:"nxt_ctrl"`
	AMQP_EVENT string `env:"NXT_AMQP_EVENTS" envDefault:"nxt_events"`
	DB         *storm.DB
	Brick      *brick.Brick
	Conductor  *comms.Conductor
	Logger     *zap.SugaredLogger
	Simulated  bool
}

var (
	ENV *EnvConfig
)

func init() {
	ENV = new(EnvConfig)
	env.Parse(ENV)
	ENV.Logger = zap.NewNop().Sugar()
}

func main() {
	simulated := flag.Bool("sim", false, "Log frames instead of sending them to a brick")
	flag.Parse()
	ENV.Simulated = *simulated

	var logger *zap.Logger
	var err error
	if ENV.DEBUG {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	ENV.Logger = logger.Sugar()

	generated, err := setJWTSecret(ENV.JWT_SECRET)
	if err != nil {
		ENV.Logger.Fatalw("unable to set up token signing", "error", err)
	}
	if generated {
		ENV.Logger.Warn("JWT_SECRET is not set, signing with a random key; tokens will not survive a restart")
	}

	if err := ensureDbDir(ENV.DBFILE); err != nil {
		ENV.Logger.Fatalw("unable to prepare database", "file", ENV.DBFILE, "error", err)
	}
	ENV.DB, err = openDb(ENV.DBFILE)
	if err != nil {
		ENV.Logger.Fatalw("unable to open database", "file", ENV.DBFILE, "error", err)
	}
	defer ENV.DB.Close()

	config, err := brick.LoadConfig(ENV.CONFIG)
	if err != nil {
		ENV.Logger.Fatalw("unable to load config", "file", ENV.CONFIG, "error", err)
	}
	if ENV.Simulated {
		config.Transport.Kind = transport.KindSim
	}

	link, err := transport.Open(config.Transport, ENV.Logger.Named("transport"))
	if err != nil {
		ENV.Logger.Fatalw("unable to open transport", "kind", config.Transport.Kind, "error", err)
	}
	defer link.Close()

	ENV.Brick, err = brick.NewBrick(nxt.NewRemoteMotorController(link), config, ENV.Logger.Named("brick"))
	if err != nil {
		ENV.Logger.Fatalw("unable to initialise brick", "error", err)
	}
	ENV.Conductor = &comms.Conductor{
		Device: ENV.Brick,
		Logger: ENV.Logger.Named("conductor"),
	}

	if ENV.AMQP != "" {
		listener, err := comms.DialAMQP(comms.AMQPConfig{
			URL:     ENV.AMQP,
			Control: ENV.AMQP_CTRL,
			Events:  ENV.AMQP_EVENT,
		}, ENV.Conductor, ENV.Logger.Named("amqp"))
		if err != nil {
			ENV.Logger.Fatalw("unable to start broker listener", "error", err)
		}
		defer listener.Close()

		go func() {
			if err := listener.Listen(); err != nil {
				ENV.Logger.Errorw("broker listener stopped", "error", err)
			}
		}()
	}

	go newShell().Start()

	ENV.Logger.Infow("listening", "address", ENV.LISTEN, "simulated", ENV.Simulated)
	if err := http.ListenAndServe(ENV.LISTEN, newRouter()); err != nil {
		ENV.Logger.Fatalw("server stopped", "error", err)
	}
}

func newRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer) // make sure this is last

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", Login)

		r.Group(func(r chi.Router) {
			r.Use(ValidateJWT)

			r.Get("/refresh_token", JWTRefresh)
			r.Get("/state", GetState)
			r.Post("/motors/{name}", SetMotor)
			r.Post("/stop", Stop)

			r.Get("/presets", ListPresets)
			r.With(RequireAdmin).Post("/presets", SavePreset)
			r.Post("/presets/{name}/apply", ApplyPreset)
		})
	})

	r.Route("/ws", func(r chi.Router) {
		if !ENV.DEBUG {
			r.Use(ValidateJWT)
		} else {
			ENV.Logger.Warn("running in debug mode, websocket authentication disabled")
		}

		r.Get("/control", ControlHandler)
	})

	return r
}

// ensureDbDir creates the directory that will hold dbFile.
func ensureDbDir(dbFile string) error {
	dir := filepath.Dir(dbFile)
	return errors.Wrapf(os.MkdirAll(dir, 0755), "unable to create %s", dir)
}

func openDb(dbFile string) (db *storm.DB, err error) {
	db, err = storm.Open(dbFile)
	if err != nil {
		return
	}

	// call inits for each type
	if err := db.Init(&User{}); err != nil {
		return nil, err
	}
	if err := db.Init(&Preset{}); err != nil {
		return nil, err
	}

	return
}
