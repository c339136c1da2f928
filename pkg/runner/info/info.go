package info

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"tableflip.dev/jquest/pkg/store"
	"tableflip.dev/jquest/pkg/timeutil"
)

// Info prints where configuration and saved data live.
type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}

	if override := os.Getenv("JQUEST_CONFIG_PATH"); override != "" {
		fmt.Fprintln(out, "JQUEST_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Fprintln(out, "JQUEST_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())
	fmt.Fprintln(out, "Config.api_url: ", n.Config.APIURL())
	fmt.Fprintln(out, "Config.timeout: ", n.Config.Timeout())

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	cookies, err := n.Persistence.LoadCookies()
	if err != nil {
		return err
	}
	if len(cookies) > 0 {
		fmt.Fprintf(out, "Session: %d cookie(s) saved\n", len(cookies))
	} else {
		fmt.Fprintln(out, "Session: signed out")
	}

	fmt.Fprintf(out, "Snapshots:\n")
	found := 0
	now := time.Now()
	for _, c := range []store.Collection{store.CollectionUser, store.CollectionJournals, store.CollectionFolders, store.CollectionQuests} {
		var raw json.RawMessage
		at, err := n.Persistence.LoadSnapshot(c, &raw)
		if errors.Is(err, store.ErrNoSnapshot) {
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-9s saved %s\n", c, timeutil.Ago(at, now))
		found++
	}

	if found == 0 {
		fmt.Fprintf(out, "  %s\n", "no snapshots")
	}

	return nil
}
