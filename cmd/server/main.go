// Command server hosts games over SSH. Every connection plays its own game;
// quitting saves it under the user name and reconnecting resumes it.
//
// Usage:
//
//	server [--port 2222] [--key host_key] [--db rogue.db]
//
// Connect with:
//
//	ssh -t -p 2222 name@localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	gossh "github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
	xssh "golang.org/x/crypto/ssh"

	"rogue-engine/internal/config"
	"rogue-engine/internal/content"
	"rogue-engine/internal/game"
	"rogue-engine/internal/logger"
	"rogue-engine/internal/savestore"
	"rogue-engine/internal/sshtty"
	"rogue-engine/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	port := flag.Int("port", cfg.SSHPort, "SSH server port")
	keyFile := flag.String("key", cfg.SSHHostKey, "PEM host key, generated if absent")
	dbPath := flag.String("db", cfg.DBPath, "SQLite save database")
	flag.Parse()

	log, closeLog, err := logger.New(cfg.Logger(""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := savestore.Open(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("open save store")
	}
	defer store.Close()
	if slots, err := store.List(context.Background()); err == nil {
		log.WithField("saves", len(slots)).Info("save store ready")
	}

	signer, err := loadOrCreateHostKey(*keyFile, log)
	if err != nil {
		log.WithError(err).Fatal("host key")
	}

	h := &handler{cfg: cfg, store: store, log: log}
	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", *port),
		Handler:     h.serve,
		PtyCallback: func(gossh.Context, gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}
	log.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("serve")
	}
}

// handler runs one game per SSH session.
type handler struct {
	cfg   config.Config
	store *savestore.Store
	log   logrus.FieldLogger
}

func (h *handler) serve(s gossh.Session) {
	name := sanitizeName(s.User())
	if name == "" {
		name = "anonymous"
	}
	log := h.log.WithFields(logrus.Fields{"user": name, "remote": s.RemoteAddr().String()})

	screen, err := sshtty.NewScreen(s)
	if errors.Is(err, sshtty.ErrNoPty) {
		fmt.Fprintln(s, "This game needs a terminal. Connect with: ssh -t ...")
		return
	}
	if err != nil {
		log.WithError(err).Warn("terminal setup failed")
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	defer screen.Fini()

	ctx := context.Background()
	g, err := h.loadOrNew(ctx, name, log)
	if err != nil {
		log.WithError(err).Error("start game")
		return
	}
	log.WithField("level", g.SceneID()).Info("session started")

	ui := tui.New(screen, g, tui.Options{
		Save: func(g *game.Game) error {
			data, err := g.Marshal()
			if err != nil {
				return err
			}
			return h.store.Put(ctx, savestore.Slot{User: name, Level: g.SceneID(), Turns: g.Turns()}, data)
		},
		Discard: func() error { return h.store.Delete(ctx, name) },
		Log:     log,
	})
	if err := ui.Run(); err != nil {
		log.WithError(err).Error("session failed")
		return
	}
	log.Info("session ended")
}

// loadOrNew resumes the user's save, or starts a new game when there is
// none or it cannot be read.
func (h *handler) loadOrNew(ctx context.Context, name string, log logrus.FieldLogger) (*game.Game, error) {
	opts := content.GameOptions(h.cfg.GameSeed(), h.cfg.FOVRadius, h.cfg.MapSize(), log)
	data, err := h.store.Get(ctx, name)
	switch {
	case err == nil:
		g, err := game.Unmarshal(data, content.Registries(), opts)
		if err == nil {
			return g, nil
		}
		log.WithError(err).Warn("save unreadable, starting over")
	case !errors.Is(err, savestore.ErrNotFound):
		return nil, err
	}
	return game.New(opts)
}

// maxNameBytes bounds user names used as save keys.
const maxNameBytes = 16

// sanitizeName drops control characters from a user name and cuts it to
// maxNameBytes on a rune boundary.
func sanitizeName(name string) string {
	out := make([]byte, 0, maxNameBytes)
	for _, r := range name {
		if r == utf8.RuneError || unicode.IsControl(r) {
			continue
		}
		if len(out)+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		out = utf8.AppendRune(out, r)
	}
	return string(out)
}

// loadOrCreateHostKey loads a PEM private key from path, or generates a new
// ed25519 key and stores it there.
func loadOrCreateHostKey(path string, log logrus.FieldLogger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.WithField("path", path).Info("host key loaded")
			return signer, nil
		}
	}

	log.WithField("path", path).Info("generating host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	block, err := xssh.MarshalPrivateKey(key, "rogue-engine server")
	if err != nil {
		return nil, fmt.Errorf("marshal host key: %w", err)
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		log.WithError(err).Warn("host key not persisted")
	}
	return signer, nil
}
