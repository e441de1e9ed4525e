package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"runtime"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mdouchement/novatech/internal/config"
	"github.com/mdouchement/novatech/internal/database"
	"github.com/mdouchement/novatech/internal/logger"
	"github.com/mdouchement/novatech/internal/model"
	"github.com/mdouchement/novatech/internal/server"
	"github.com/mdouchement/novatech/internal/store"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &coral.Command{
		Use:     "novatech",
		Short:   "NovaTech agency content server",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	initCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)

	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	resetCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(resetCmd)

	checkCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(checkCmd)

	c.AddCommand(hashPasswordCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

// open returns the configured content store and its logger.
// The returned func closes the database.
func open(konf *config.Config) (*store.Store, *logrus.Logger, func(), error) {
	l, err := logger.New(konf.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.StormOpen(konf.Database(), konf.DatabaseCodec, konf.StorageQuota)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "could not open database")
	}

	s := store.New(db, store.Config{
		Latency:     konf.Latency,
		Credentials: konf.Credentials,
		Logger:      l,
	})

	return s, l, func() {
		if err := db.Close(); err != nil {
			l.WithError(err).Error("could not close database")
		}
	}, nil
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database with the default content",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}

			if err = database.StormInit(konf.Database(), konf.DatabaseCodec); err != nil {
				return err
			}

			s, l, close, err := open(konf)
			if err != nil {
				return err
			}
			defer close()

			if err = s.Seed(context.Background()); err != nil {
				return err
			}

			l.WithField("database", konf.Database()).Info("database initialized")
			return nil
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}

			s, l, close, err := open(konf)
			if err != nil {
				return err
			}
			defer close()

			if err = s.Check(context.Background()); err != nil {
				l.WithError(err).Warn("seed defaults are served for corrupted collections")
			}

			engine := server.EchoEngine(server.IOC{
				Version:    version,
				Store:      s,
				Logger:     l,
				SigningKey: konf.SigningKey(),
				TokenTTL:   konf.TokenTTL,
			})
			server.PrintRoutes(engine)

			address := konf.Address
			message := "could not run server"
			l.Infof("Server listening on %s", address)
			parts := strings.Split(address, ":")
			if len(parts) == 2 && parts[0] == "unix" {
				socketFile := parts[1]
				if _, err := os.Stat(socketFile); err == nil {
					l.Infof("Removing existing %s", socketFile)
					os.Remove(socketFile)
				}
				defer os.Remove(socketFile)
				listener, err := net.Listen(parts[0], socketFile)
				if err != nil {
					return err
				}
				return errors.Wrap(engine.Server.Serve(listener), message)
			}
			return errors.Wrap(engine.Start(address), message)
		},
	}

	//
	//
	resetCmd = &coral.Command{
		Use:   "reset [COLLECTION...]",
		Short: "Reset the given collections (all by default) to the default content",
		RunE: func(_ *coral.Command, args []string) error {
			collections := model.Collections
			if len(args) > 0 {
				collections = nil
				for _, arg := range args {
					c, ok := model.ParseCollection(arg)
					if !ok {
						return errors.Errorf("unknown collection: %s", arg)
					}
					collections = append(collections, c)
				}
			}

			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}

			s, _, close, err := open(konf)
			if err != nil {
				return err
			}
			defer close()

			for _, c := range collections {
				if err = s.Reset(context.Background(), c); err != nil {
					return err
				}
				fmt.Println("Reset", c)
			}
			return nil
		},
	}

	//
	//
	checkCmd = &coral.Command{
		Use:   "check",
		Short: "Check the persisted collections",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}

			s, _, close, err := open(konf)
			if err != nil {
				return err
			}
			defer close()

			if err = s.Check(context.Background()); err != nil {
				return err
			}

			fmt.Println("OK")
			return nil
		},
	}

	//
	//
	hashPasswordCmd = &coral.Command{
		Use:   "hash-password",
		Short: "Hash the admin password for the admin.password_hash setting",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			password, err := readline.Password("Password: ")
			if err != nil {
				return errors.Wrap(err, "could not read password from stdin")
			}
			if len(password) == 0 {
				return errors.New("empty password")
			}

			hash, err := argon2.GenerateFromPasswordString(string(password), argon2.Default)
			if err != nil {
				return errors.Wrap(err, "could not hash password")
			}

			fmt.Println(hash)
			return nil
		},
	}
)
