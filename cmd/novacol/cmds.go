package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tuannm99/novacol/gologger"
	"github.com/tuannm99/novacol/internal"
	"github.com/tuannm99/novacol/internal/engine"
	"github.com/tuannm99/novacol/internal/record"
	"github.com/tuannm99/novacol/internal/types"
)

func addCommands(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "create column",
		Short: "Create an empty dynamic column",
		Args:  cobra.ExactArgs(1),
		RunE:  createColumn}
	cmd.Flags().Int("max-types", 0, "bound on distinct concrete types (default from config)")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "ingest column rows.json",
		Short: "Append a JSON array of values to a column",
		Args:  cobra.ExactArgs(2),
		RunE:  ingestRows}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "resolve column path",
		Short: "Materialize a virtual subcolumn (e.g. Int64, Int64.null, Array(String).size0)",
		Args:  cobra.ExactArgs(2),
		RunE:  resolveSubcolumn}
	cmd.Flags().Bool("strict", false, "fail instead of printing absence for unknown subcolumns")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "types column",
		Short: "List the concrete types a column currently holds",
		Args:  cobra.ExactArgs(1),
		RunE:  listTypes}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "ls",
		Short: "List stored columns",
		RunE:  listColumns}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "drop column",
		Short: "Delete a stored column",
		Args:  cobra.ExactArgs(1),
		RunE:  dropColumn}
	root.AddCommand(cmd)
}

// Action carries the state shared by every command run.
type Action struct {
	cmd   *cobra.Command
	cfg   *internal.NovaColConfig
	log   zerolog.Logger
	store *engine.Store
}

func newAction(cmd *cobra.Command) (*Action, error) {
	cfg := defaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := internal.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.Store.Workdir = dir
	}
	pretty, _ := cmd.Flags().GetBool("pretty")

	a := &Action{
		cmd: cmd,
		cfg: cfg,
		log: gologger.NewLogger(cfg.Log.Level, pretty || cfg.Log.Pretty),
	}
	a.store = engine.NewStore(cfg.Store.Workdir)
	return a, nil
}

func defaultConfig() *internal.NovaColConfig {
	cfg := &internal.NovaColConfig{AppName: "novacol"}
	cfg.Store.Workdir = "./data"
	cfg.Store.MaxTypes = types.DefaultMaxDynamicTypes
	cfg.Log.Level = "info"
	return cfg
}

func createColumn(cmd *cobra.Command, args []string) error {
	a, err := newAction(cmd)
	if err != nil {
		return err
	}
	maxTypes, _ := cmd.Flags().GetInt("max-types")
	if maxTypes == 0 {
		maxTypes = a.cfg.Store.MaxTypes
	}
	col, err := a.store.CreateColumn(args[0], maxTypes)
	if err != nil {
		return err
	}
	a.log.Info().Str("column", args[0]).Str("type", col.Type().Name()).Msg("created")
	return nil
}

func ingestRows(cmd *cobra.Command, args []string) error {
	a, err := newAction(cmd)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	rows, err := record.DecodeJSONRows(data)
	if err != nil {
		return err
	}
	total, err := a.store.AppendRows(args[0], rows)
	if err != nil {
		return err
	}
	a.log.Info().Str("column", args[0]).Int("appended", len(rows)).Int("rows", total).Msg("ingested")
	return nil
}

func resolveSubcolumn(cmd *cobra.Command, args []string) error {
	a, err := newAction(cmd)
	if err != nil {
		return err
	}
	strict, _ := cmd.Flags().GetBool("strict")
	res, err := a.store.Resolve(args[0], args[1], strict)
	if err != nil {
		return err
	}
	if res == nil {
		fmt.Printf("%s has no subcolumn %q\n", args[0], args[1])
		return nil
	}
	fmt.Printf("type: %s\n", res.Type.Name())
	for i := 0; i < res.Column.Len(); i++ {
		v := res.Column.Get(i)
		if v == nil {
			fmt.Println("NULL")
			continue
		}
		fmt.Printf("%v\n", v)
	}
	return nil
}

func listTypes(cmd *cobra.Command, args []string) error {
	a, err := newAction(cmd)
	if err != nil {
		return err
	}
	col, meta, err := a.store.OpenColumn(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s %s (%d rows)\n", meta.Name, meta.TypeName, meta.Rows)
	for g, name := range col.TypeNames() {
		local, _ := col.Variant().GlobalToLocal(uint8(g))
		fmt.Printf("  %3d -> slot %d  %s\n", g, local, name)
	}
	return nil
}

func listColumns(cmd *cobra.Command, _ []string) error {
	a, err := newAction(cmd)
	if err != nil {
		return err
	}
	metas, err := a.store.ListColumns()
	if err != nil {
		return err
	}
	for _, m := range metas {
		fmt.Printf("%s\t%s\t%d rows\n", m.Name, m.TypeName, m.Rows)
	}
	return nil
}

func dropColumn(cmd *cobra.Command, args []string) error {
	a, err := newAction(cmd)
	if err != nil {
		return err
	}
	if err := a.store.DropColumn(args[0]); err != nil {
		return err
	}
	a.log.Info().Str("column", args[0]).Msg("dropped")
	return nil
}
