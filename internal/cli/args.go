package cli

import (
	"fmt"
)

// Args represents the top-level command structure
type Args struct {
	Watch  *WatchCmd  `arg:"subcommand:watch" help:"Run the clipboard observer in the foreground"`
	Browse *BrowseCmd `arg:"subcommand:browse" help:"Open the interactive history browser (default)"`
	List   *ListCmd   `arg:"subcommand:list" help:"Print history items"`
	Get    *GetCmd    `arg:"subcommand:get" help:"Output a history item by index"`
	Search *SearchCmd `arg:"subcommand:search" help:"Search text history"`
	Star   *StarCmd   `arg:"subcommand:star" help:"Toggle the star on an item"`
	Delete *DeleteCmd `arg:"subcommand:delete" help:"Delete items by hash"`
	Clear  *ClearCmd  `arg:"subcommand:clear" help:"Delete the whole history"`
	Group  *GroupCmd  `arg:"subcommand:group" help:"Manage item groups"`
	Config *ConfigCmd `arg:"subcommand:config" help:"Manage configuration"`

	Data *string `arg:"--data,env:CLIPVAULT_DATA" help:"Override the snapshot file path"`
}

// WatchCmd represents the 'clipvault watch' command
type WatchCmd struct {
	Interval *int `arg:"-i,--interval" help:"Poll interval in milliseconds (overrides config)"`
}

// BrowseCmd represents the 'clipvault browse' command
type BrowseCmd struct {
	NoWatch bool `arg:"--no-watch" help:"Do not capture new clipboard content while browsing"`
}

// ListCmd represents the 'clipvault list' command
type ListCmd struct {
	Images  bool `arg:"--images" help:"List image items instead of text"`
	Starred bool `arg:"--starred" help:"List starred items only"`
	Limit   *int `arg:"-n,--limit" help:"Show at most N items"`
}

// GetCmd represents the 'clipvault get' command
type GetCmd struct {
	Index     int  `arg:"positional,required" help:"History index (0=newest)"`
	Image     bool `arg:"--image" help:"Index into image history instead of text"`
	Clipboard bool `arg:"-c,--clipboard" help:"Copy to the clipboard instead of stdout"`
}

// SearchCmd represents the 'clipvault search' command
type SearchCmd struct {
	Query string `arg:"positional,required" help:"Substring to search for (case-insensitive)"`
}

// StarCmd represents the 'clipvault star' command
type StarCmd struct {
	Hash string `arg:"positional,required" help:"Item hash (see 'clipvault list')"`
}

// DeleteCmd represents the 'clipvault delete' command
type DeleteCmd struct {
	Hashes []string `arg:"positional,required" help:"Item hashes to delete"`
}

// ClearCmd represents the 'clipvault clear' command
type ClearCmd struct {
	Force bool `arg:"-f,--force" help:"Skip confirmation prompt"`
}

// GroupCmd represents the 'clipvault group' command
type GroupCmd struct {
	Create *GroupCreateCmd `arg:"subcommand:create" help:"Create a group"`
	Delete *GroupDeleteCmd `arg:"subcommand:delete" help:"Delete a group (items are kept)"`
	Add    *GroupAddCmd    `arg:"subcommand:add" help:"Add an item to a group"`
	List   *GroupListCmd   `arg:"subcommand:list" help:"List groups and their members"`
}

// GroupCreateCmd creates a named group
type GroupCreateCmd struct {
	Name  string  `arg:"positional" help:"Group name (defaults to 'New Group')"`
	Color *string `arg:"--color" help:"Accent color, e.g. #A855F7"`
	Icon  *string `arg:"--icon" help:"Display icon"`
}

// GroupDeleteCmd deletes a group by id
type GroupDeleteCmd struct {
	ID string `arg:"positional,required" help:"Group id (see 'clipvault group list')"`
}

// GroupAddCmd adds an item to a group
type GroupAddCmd struct {
	ID   string `arg:"positional,required" help:"Group id"`
	Hash string `arg:"positional,required" help:"Item hash"`
}

// GroupListCmd lists all groups
type GroupListCmd struct{}

// ConfigCmd represents the 'clipvault config' command
type ConfigCmd struct {
	Get  *ConfigGetCmd  `arg:"subcommand:get" help:"Print a config value"`
	Set  *ConfigSetCmd  `arg:"subcommand:set" help:"Set a config value"`
	List *ConfigListCmd `arg:"subcommand:list" help:"Print all config values"`
}

// ConfigGetCmd prints a single config value
type ConfigGetCmd struct {
	Key string `arg:"positional,required" help:"Config key"`
}

// ConfigSetCmd sets a single config value
type ConfigSetCmd struct {
	Key   string `arg:"positional,required" help:"Config key"`
	Value string `arg:"positional,required" help:"New value"`
}

// ConfigListCmd prints every config key and value
type ConfigListCmd struct{}

// Description returns the program description
func (Args) Description() string {
	return "clipvault - Clipboard history manager with groups and starring"
}

// Version returns the program version
func (Args) Version() string {
	return "clipvault 0.1.0"
}

// Epilogue returns additional help text
func (Args) Epilogue() string {
	return `Examples:
  clipvault                        # Interactive browser (captures while open)
  clipvault watch                  # Headless capture daemon
  clipvault list                   # Text history with hashes
  clipvault list --images          # Image history
  clipvault get 0                  # Print newest text item
  clipvault get -c 2               # Copy third text item back
  clipvault search "todo"          # Case-insensitive substring search
  clipvault star <hash>            # Toggle a star
  clipvault group create Work      # Create a group
  clipvault group add <id> <hash>  # Add an item to it
  clipvault config set poll-interval-ms 250

The snapshot file assumes a single writer: run one capturing process
(watch or the browser) at a time.`
}

// Validate performs validation on the parsed arguments
func (args *Args) Validate() error {
	if args.Get != nil {
		return args.Get.Validate()
	}
	if args.Watch != nil {
		return args.Watch.Validate()
	}
	if args.Group != nil {
		return args.Group.Validate()
	}
	if args.Config != nil {
		return args.Config.Validate()
	}
	return nil
}

// Validate validates get command arguments
func (g *GetCmd) Validate() error {
	if g.Index < 0 {
		return fmt.Errorf("index must be non-negative")
	}
	return nil
}

// Validate validates watch command arguments
func (w *WatchCmd) Validate() error {
	if w.Interval != nil && *w.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	return nil
}

// Validate validates group subcommand arguments
func (g *GroupCmd) Validate() error {
	if g.Create == nil && g.Delete == nil && g.Add == nil && g.List == nil {
		return fmt.Errorf("group requires a subcommand: create, delete, add, or list")
	}
	return nil
}

// Validate validates config subcommand arguments
func (c *ConfigCmd) Validate() error {
	if c.Get == nil && c.Set == nil && c.List == nil {
		return fmt.Errorf("config requires a subcommand: get, set, or list")
	}
	return nil
}
