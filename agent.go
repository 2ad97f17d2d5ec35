package main

import (
	"context"
	"fmt"
	"log/slog"

	"clipdeck/clip"
	"clipdeck/config"
	"clipdeck/keys"
	"clipdeck/menu"
	"clipdeck/platform"
	"clipdeck/storage"
	"clipdeck/web"
)

// Agent coordinates the keyboard hook, combination tracking, command
// dispatch and the dashboard surfaces.
type Agent struct {
	cfg        *config.Config
	source     platform.KeySource
	tracker    *keys.Tracker
	dispatcher *menu.Dispatcher
	store      *clip.Store
	db         *storage.DB
	web        *web.Server
	cancelKey  keys.Key
}

// NewAgent creates a new agent instance
func NewAgent(cfg *config.Config) (*Agent, error) {
	bindings, err := menu.Bindings(cfg.Commands)
	if err != nil {
		return nil, fmt.Errorf("invalid trigger table: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return nil, err
	}

	// The journal is best-effort: the engine runs without it.
	var db *storage.DB
	if dataDir, err := config.Dir(); err == nil {
		db, err = storage.Open(dataDir)
		if err != nil {
			slog.Warn("Journal unavailable", "error", err)
			db = nil
		}
	}

	a := &Agent{
		cfg:       cfg,
		source:    platform.NewKeySource(),
		tracker:   keys.NewTracker(),
		store:     clip.New(cfg.Clipboard.MaxSlots),
		db:        db,
		cancelKey: keys.Key(cfg.Hotkey.Cancel),
	}

	if cfg.Web.Enabled {
		a.web = web.NewServer(db, cfg.Web.Port)
	}

	a.dispatcher, err = menu.NewDispatcher(menu.Options{
		Bindings:   bindings,
		Modifier:   keys.Key(cfg.Hotkey.Modifier),
		CancelKey:  a.cancelKey,
		Store:      a.store,
		Clipboard:  platform.NewClipboard(),
		Paster:     platform.NewPaster(),
		Observer:   a,
		ConfigPath: configPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	return a, nil
}

// Run starts the agent's main event loop: the single consumer of raw
// key events. Combinations are finalized and dispatched strictly in
// order; command handlers run synchronously inside this loop.
func (a *Agent) Run(ctx context.Context) error {
	defer func() {
		if a.db != nil {
			a.db.Close()
		}
	}()

	events, err := a.source.Events(ctx)
	if err != nil {
		return fmt.Errorf("failed to start keyboard hook: %w", err)
	}

	if a.web != nil {
		go func() {
			if err := a.web.Start(); err != nil {
				slog.Error("Web server error", "error", err)
			}
		}()
	}

	slog.Info("ClipDeck started",
		"modifier", a.cfg.Hotkey.Modifier,
		"cancel", a.cfg.Hotkey.Cancel,
		"max_slots", a.cfg.Clipboard.MaxSlots,
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt := <-events:
			if evt.Pressed {
				a.tracker.OnPress(evt.Key)
				continue
			}

			wasIdle := a.dispatcher.Machine().Current() == menu.Idle
			combo, finalized := a.tracker.OnRelease(evt.Key)
			if !finalized {
				continue
			}

			a.dispatcher.HandleCombination(combo)
			a.publishState()

			// The cancel key doubles as the shutdown signal when no
			// command was active to cancel.
			if evt.Key == a.cancelKey && wasIdle {
				slog.Info("Cancel key released while idle, stopping")
				return nil
			}
		}
	}
}

// Observe implements menu.Observer: every handled command is journaled
// and pushed to the dashboard. It runs synchronously on the event loop,
// so reading the store here is safe.
func (a *Agent) Observe(r menu.Result) {
	if a.db != nil {
		run := &storage.CommandRun{
			Command:   r.Command,
			Slot:      r.Slot,
			CharCount: r.Chars,
			Success:   r.Success,
			Detail:    r.Detail,
		}
		if err := a.db.SaveRun(run); err != nil {
			slog.Warn("Failed to journal command", "error", err)
		}
	}

	if a.web != nil {
		a.web.BroadcastResult(r)
		a.web.UpdateSlots(a.store.List())
	}
}

func (a *Agent) publishState() {
	if a.web != nil {
		a.web.UpdateStatus(a.dispatcher.Machine().Current().String())
	}
}
