// Package cli wires configuration, the snapshot file, the content store,
// the clipboard watcher, and the browser together and executes commands.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renvik/clipvault/internal/clipboard"
	"github.com/renvik/clipvault/internal/clipboard/sysboard"
	"github.com/renvik/clipvault/internal/config"
	"github.com/renvik/clipvault/internal/logging"
	"github.com/renvik/clipvault/internal/store"
	"github.com/renvik/clipvault/internal/store/snapshot"
	"github.com/renvik/clipvault/internal/tui"
	"github.com/renvik/clipvault/internal/watcher"
)

// CLI handles the command-line interface
type CLI struct {
	store         *store.Store
	fileStore     *snapshot.FileStore
	clipboard     clipboard.Board
	configManager *config.Manager
	config        *config.Config
}

// NewWithArgs creates a new CLI instance with custom arguments for the
// snapshot file path (precedence: flag > env var > config > default).
func NewWithArgs(args *Args) (*CLI, error) {
	cm, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config: %w", err)
	}
	cfg, err := cm.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logging.Setup(logging.ParseFormat(cfg.LogFormat), logging.ParseLevel(cfg.LogLevel))

	var dataPath string
	switch {
	case args != nil && args.Data != nil:
		dataPath = *args.Data
	case cfg.DataLocation != "":
		dataPath = cfg.DataLocation
	default:
		dataPath, err = snapshot.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve snapshot path: %w", err)
		}
	}

	fs := snapshot.New(dataPath)
	snap, err := fs.Load()
	if err != nil {
		slog.Warn("snapshot unreadable, starting with empty history",
			"path", fs.Path(), "err", err)
		snap = nil
	}

	return &CLI{
		store:         store.FromSnapshot(snap, fs),
		fileStore:     fs,
		clipboard:     sysboard.New(),
		configManager: cm,
		config:        cfg,
	}, nil
}

// Execute runs the CLI command based on parsed arguments
func (c *CLI) Execute(args *Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	switch {
	case args.Watch != nil:
		return c.executeWatch(args.Watch)
	case args.Browse != nil:
		return c.executeBrowse(args.Browse)
	case args.List != nil:
		return c.executeList(args.List)
	case args.Get != nil:
		return c.executeGet(args.Get)
	case args.Search != nil:
		return c.executeSearch(args.Search)
	case args.Star != nil:
		return c.executeStar(args.Star)
	case args.Delete != nil:
		return c.executeDelete(args.Delete)
	case args.Clear != nil:
		return c.executeClear(args.Clear)
	case args.Group != nil:
		return c.executeGroup(args.Group)
	case args.Config != nil:
		return c.executeConfig(args.Config)
	default:
		return c.executeBrowse(&BrowseCmd{})
	}
}

func (c *CLI) pollInterval(override *int) time.Duration {
	ms := c.config.PollIntervalMS
	if override != nil {
		ms = *override
	}
	return time.Duration(ms) * time.Millisecond
}

// executeWatch runs the observer loop until interrupted.
func (c *CLI) executeWatch(cmd *WatchCmd) error {
	if !c.clipboard.Available() {
		return fmt.Errorf("clipboard is not available on this system")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(c.clipboard, c.store, c.pollInterval(cmd.Interval))
	slog.Info("watching clipboard", "interval", c.pollInterval(cmd.Interval), "data", c.fileStore.Path())
	w.Run(ctx)
	return nil
}

// executeBrowse launches the interactive browser with an embedded watcher.
func (c *CLI) executeBrowse(cmd *BrowseCmd) error {
	var (
		w      *watcher.Watcher
		cancel context.CancelFunc
	)
	if !cmd.NoWatch && c.clipboard.Available() {
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		defer cancel()
		w = watcher.New(c.clipboard, c.store, c.pollInterval(nil))
		go w.Run(ctx)
	}

	model := tui.NewModel(c.store, func(item store.ClipItem) error {
		return c.copyItem(item, w)
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	c.store.OnChange(func() {
		p.Send(tui.StoreChangedMsg{})
	})

	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}

// copyItem writes an item back to the system clipboard, marking the write
// on the watcher first so it is not re-captured.
func (c *CLI) copyItem(item store.ClipItem, w *watcher.Watcher) error {
	switch item.Kind {
	case store.KindText:
		data := []byte(item.Content)
		if w != nil {
			w.MarkSelfWrite(store.KindText, data)
		}
		return c.clipboard.WriteText(data)

	case store.KindImage:
		stored, err := base64.StdEncoding.DecodeString(item.Content)
		if err != nil {
			return fmt.Errorf("corrupt image content: %w", err)
		}
		// The clipboard carries PNG, the store carries the JPEG storage
		// variant, so re-encode before writing back.
		img, err := jpeg.Decode(bytes.NewReader(stored))
		if err != nil {
			return fmt.Errorf("failed to decode stored image: %w", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("failed to encode image for clipboard: %w", err)
		}
		if w != nil {
			w.MarkSelfWrite(store.KindImage, buf.Bytes())
		}
		return c.clipboard.WriteImage(buf.Bytes())

	default:
		return fmt.Errorf("unknown item kind %q", item.Kind)
	}
}

// executeList prints history items, newest first.
func (c *CLI) executeList(cmd *ListCmd) error {
	var items []store.ClipItem
	switch {
	case cmd.Starred:
		items = c.store.Starred()
	case cmd.Images:
		items = c.store.Images()
	default:
		items = c.store.Texts()
	}
	if cmd.Limit != nil && *cmd.Limit >= 0 && *cmd.Limit < len(items) {
		items = items[:*cmd.Limit]
	}

	if len(items) == 0 {
		fmt.Println("No items")
		return nil
	}
	printItems(items)
	return nil
}

func printItems(items []store.ClipItem) {
	for i, item := range items {
		star := " "
		if item.Starred {
			star = "*"
		}
		kind := "text "
		if item.Kind == store.KindImage {
			kind = "image"
		}
		preview := strings.ReplaceAll(item.Preview, "\n", " ")
		fmt.Printf("%3d %s %s %s %s  %s\n",
			i, star, kind,
			item.Timestamp.Format("2006-01-02 15:04"),
			item.Hash, preview)
	}
}

// executeGet prints an item to stdout or copies it back to the clipboard.
func (c *CLI) executeGet(cmd *GetCmd) error {
	items := c.store.Texts()
	if cmd.Image {
		items = c.store.Images()
	}
	if cmd.Index >= len(items) {
		return fmt.Errorf("index %d out of range (%d items)", cmd.Index, len(items))
	}
	item := items[cmd.Index]

	if cmd.Clipboard {
		if !c.clipboard.Available() {
			return fmt.Errorf("clipboard is not available on this system")
		}
		if err := c.copyItem(item, nil); err != nil {
			return err
		}
		fmt.Println("Copied to clipboard")
		return nil
	}

	if item.Kind == store.KindImage {
		stored, err := base64.StdEncoding.DecodeString(item.Content)
		if err != nil {
			return fmt.Errorf("corrupt image content: %w", err)
		}
		_, err = os.Stdout.Write(stored)
		return err
	}
	fmt.Print(item.Content)
	return nil
}

// executeSearch prints text items matching the query.
func (c *CLI) executeSearch(cmd *SearchCmd) error {
	items := c.store.SearchText(cmd.Query)
	if len(items) == 0 {
		fmt.Println("No matches")
		return nil
	}
	printItems(items)
	return nil
}

// executeStar toggles the star on an item.
func (c *CLI) executeStar(cmd *StarCmd) error {
	if _, ok := c.store.Find(cmd.Hash); !ok {
		return fmt.Errorf("no item with hash %s", cmd.Hash)
	}
	c.store.ToggleStar(cmd.Hash)
	item, _ := c.store.Find(cmd.Hash)
	if item.Starred {
		fmt.Println("Starred")
	} else {
		fmt.Println("Unstarred")
	}
	return nil
}

// executeDelete deletes items by hash.
func (c *CLI) executeDelete(cmd *DeleteCmd) error {
	for _, hash := range cmd.Hashes {
		if _, ok := c.store.Find(hash); !ok {
			return fmt.Errorf("no item with hash %s", hash)
		}
	}
	c.store.DeleteMany(cmd.Hashes)
	fmt.Printf("Deleted %d item(s)\n", len(cmd.Hashes))
	return nil
}

// executeClear deletes every item after confirmation.
func (c *CLI) executeClear(cmd *ClearCmd) error {
	if !cmd.Force {
		fmt.Print("Delete the entire clipboard history? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if s := strings.ToLower(strings.TrimSpace(answer)); s != "y" && s != "yes" {
			fmt.Println("Cancelled")
			return nil
		}
	}
	c.store.DeleteAll()
	fmt.Println("History cleared")
	return nil
}

// executeGroup dispatches the group subcommands.
func (c *CLI) executeGroup(cmd *GroupCmd) error {
	switch {
	case cmd.Create != nil:
		group := c.store.CreateGroup(cmd.Create.Name,
			deref(cmd.Create.Color), deref(cmd.Create.Icon))
		fmt.Printf("Created group %q (%s)\n", group.Name, group.ID)
		return nil

	case cmd.Delete != nil:
		if _, ok := findGroup(c.store, cmd.Delete.ID); !ok {
			return fmt.Errorf("no group with id %s", cmd.Delete.ID)
		}
		c.store.DeleteGroup(cmd.Delete.ID)
		fmt.Println("Group deleted")
		return nil

	case cmd.Add != nil:
		if err := c.store.AddToGroup(cmd.Add.ID, cmd.Add.Hash); err != nil {
			return err
		}
		fmt.Println("Added to group")
		return nil

	case cmd.List != nil:
		groups := c.store.Groups()
		if len(groups) == 0 {
			fmt.Println("No groups")
			return nil
		}
		for _, g := range groups {
			fmt.Printf("%s  %s %s (%d items)\n", g.ID, g.Icon, g.Name, len(g.MemberHashes))
			for _, item := range c.store.GroupItems(g.ID) {
				fmt.Printf("    %s  %s\n", item.Hash,
					strings.ReplaceAll(item.Preview, "\n", " "))
			}
		}
		return nil
	}
	return fmt.Errorf("group requires a subcommand: create, delete, add, or list")
}

func findGroup(st *store.Store, id string) (store.Group, bool) {
	for _, g := range st.Groups() {
		if g.ID == id {
			return g, true
		}
	}
	return store.Group{}, false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// executeConfig dispatches the config subcommands.
func (c *CLI) executeConfig(cmd *ConfigCmd) error {
	switch {
	case cmd.Get != nil:
		value, err := c.configManager.Get(cmd.Get.Key)
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil

	case cmd.Set != nil:
		if err := c.configManager.Update(cmd.Set.Key, cmd.Set.Value); err != nil {
			return err
		}
		fmt.Printf("Set %s = %s\n", cmd.Set.Key, cmd.Set.Value)
		return nil

	case cmd.List != nil:
		values, err := c.configManager.List()
		if err != nil {
			return err
		}
		for _, key := range config.Keys {
			fmt.Printf("%s: %s\n", key, values[key])
		}
		return nil
	}
	return fmt.Errorf("config requires a subcommand: get, set, or list")
}
