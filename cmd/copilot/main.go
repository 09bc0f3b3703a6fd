package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/socraticlabs/copilot/engine"
	"github.com/socraticlabs/copilot/phase"
	"github.com/socraticlabs/copilot/store"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to config JSON file (optional)")
		resume     = flag.String("resume", "", "Discussion ID to resume")
		list       = flag.Bool("list", false, "List stored discussions and exit")
		storePath  = flag.String("store", "", "Path to the discussion store directory (overrides config)")
		storeAddr  = flag.String("redis", "", "Redis address; selects the redis store driver (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	var cfg *engine.Config
	if *configFile != "" {
		loaded, err := engine.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	} else {
		defaults := engine.DefaultConfig()
		cfg = &defaults
	}

	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if *storeAddr != "" {
		cfg.Store.Driver = store.DriverRedis
		cfg.Store.Redis.Addr = *storeAddr
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e, err := engine.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer e.Close()

	if *list {
		listDiscussions(ctx, e)
		return
	}

	repl(ctx, e, *resume)
}

func listDiscussions(ctx context.Context, e *engine.Engine) {
	summaries, err := e.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list discussions: %v", err)
	}
	if len(summaries) == 0 {
		fmt.Println("No stored discussions.")
		return
	}
	for _, s := range summaries {
		fmt.Printf("%s  %s\n", s.ID, s.Title)
	}
}

func repl(ctx context.Context, e *engine.Engine, id string) {
	if id == "" {
		fmt.Println("Starting a new discussion. Describe the system you want to design.")
	} else {
		fmt.Printf("Resuming discussion %s.\n", id)
	}
	fmt.Println("Commands: [next] [back] [summarize] [end]")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		for step := range e.Turn(ctx, text, id) {
			if step.Err != nil {
				if errors.Is(step.Err, engine.ErrDiscussionNotFound) {
					log.Fatalf("No discussion with ID %s", id)
				}
				fmt.Fprintf(os.Stderr, "turn failed: %v\n", step.Err)
				continue
			}

			id = step.DiscussionID

			if step.Phase == phase.End || step.Phase == phase.Summarize {
				if step.Reply != "" {
					fmt.Printf("\n%s\n", step.Reply)
				}
				fmt.Printf("\nDiscussion %s ended.\n", id)
				return
			}

			fmt.Printf("\n[%s]\n%s\n\n", phase.Humanize(step.Phase), step.Reply)
			if !step.Saved {
				fmt.Fprintln(os.Stderr, "warning: discussion could not be saved")
			}
		}

		if ctx.Err() != nil {
			break
		}
	}

	if id != "" {
		fmt.Printf("\nDiscussion saved as %s. Resume with -resume %s\n", id, id)
	}
}
