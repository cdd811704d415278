package main

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"exifmgr/internal/app"
	appErrors "exifmgr/internal/errors"
	"exifmgr/internal/gps"
	"exifmgr/internal/tags"
	"exifmgr/internal/tui"
)

func newReadCmd(e *env) *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "read FILE",
		Short: "Print tag values of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := parseTags(names)
			if err != nil {
				return err
			}
			values, err := e.manager.ReadTags(cmd.Context(), list, args[0])
			if err != nil {
				return err
			}
			e.printer.PrintValues(list, values)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&names, "tags", "t", readableTagNames(), "Tags to read")
	return cmd
}

func newWriteCmd(e *env) *cobra.Command {
	var assignments []string

	cmd := &cobra.Command{
		Use:   "write FILE|DIR...",
		Short: "Overwrite tags in place",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(assignments)
			if err != nil {
				return err
			}
			return runWrite(cmd, e, args, values)
		},
	}
	cmd.Flags().StringArrayVarP(&assignments, "set", "s", nil, "Tag assignment as Field=Value (repeatable)")
	return cmd
}

func newGPSCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gps",
		Short: "Read or set GPS positions",
	}

	get := &cobra.Command{
		Use:   "get FILE...",
		Short: "Print the GPS position in decimal degrees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, file := range args {
				coord, ok, err := e.manager.ReadGPS(cmd.Context(), file)
				if err != nil {
					return err
				}
				e.printer.PrintCoordinate(file, coord, ok)
			}
			return nil
		},
	}

	var lat, lng float64
	set := &cobra.Command{
		Use:   "set FILE|DIR...",
		Short: "Write a GPS position given in decimal degrees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord := gps.Coordinate{Lat: lat, Lng: lng}
			if err := coord.Validate(); err != nil {
				return err
			}
			return runWrite(cmd, e, args, e.manager.GPSToTags(coord))
		},
	}
	set.Flags().Float64Var(&lat, "lat", 0, "Latitude, negative for south")
	set.Flags().Float64Var(&lng, "lng", 0, "Longitude, negative for west")
	_ = set.MarkFlagRequired("lat")
	_ = set.MarkFlagRequired("lng")

	cmd.AddCommand(get, set)
	return cmd
}

func newScanCmd(e *env) *cobra.Command {
	var names []string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "scan DIR",
		Short: "Read tags from every image below a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := parseTags(names)
			if err != nil {
				return err
			}
			root := args[0]
			if _, err := e.filesystem.Stat(root); err != nil {
				return appErrors.Wrap(appErrors.NotFound, "stat", root, err)
			}

			scanner := &app.Scanner{
				FS:      e.filesystem,
				Reader:  e.manager,
				Workers: e.cfg.Workers,
				Logger:  e.logger,
			}
			if interactive {
				return runScanTUI(cmd, e, scanner, root, list)
			}

			result, err := scanner.Scan(cmd.Context(), root, list)
			if err != nil {
				return err
			}
			e.printer.PrintScan(result)
			return app.ScanError(result)
		},
	}
	cmd.Flags().StringSliceVarP(&names, "tags", "t", []string{
		tags.DateTimeOriginal.FieldName(),
		tags.GPSLatitude.FieldName(),
		tags.GPSLongitude.FieldName(),
	}, "Tags to read")
	cmd.Flags().BoolVar(&interactive, "tui", false, "Show an interactive progress view")
	return cmd
}

func runScanTUI(cmd *cobra.Command, e *env, scanner *app.Scanner, root string, list []tags.Tag) error {
	program := tea.NewProgram(tui.NewModel(tui.Config{Root: root, Verbose: e.cfg.Verbose}), tea.WithContext(cmd.Context()))
	scanner.OnProgress = func(current, total int) {
		program.Send(tui.ScanProgressMsg{Current: current, Total: total})
	}

	done := make(chan error, 1)
	go func() {
		result, err := scanner.Scan(cmd.Context(), root, list)
		if err != nil {
			done <- err
			program.Send(tui.ErrorMsg{Err: err})
			return
		}
		done <- app.ScanError(result)
		program.Send(tui.ScanDoneMsg{Result: result})
	}()

	final, err := program.Run()
	if err != nil {
		return appErrors.Wrap(appErrors.Internal, "tui", "", err)
	}
	if m, ok := final.(tui.Model); ok && m.Quitting {
		return nil
	}
	return <-done
}

func runWrite(cmd *cobra.Command, e *env, paths []string, values tags.Values) error {
	executor := &app.Executor{
		FS:     e.filesystem,
		Writer: e.manager,
		Logger: e.logger,
	}
	plan, err := executor.Plan(paths, values)
	if err != nil {
		return err
	}
	if len(plan.Items) == 0 {
		return appErrors.New(appErrors.NotFound, "write", "no image files in %s", strings.Join(paths, ", "))
	}
	execErr := executor.Execute(cmd.Context(), &plan)
	e.printer.PrintWrite(plan)
	return execErr
}

func parseTags(names []string) ([]tags.Tag, error) {
	list := make([]tags.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t, err := tags.Parse(name)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, nil
}

func parseAssignments(assignments []string) (tags.Values, error) {
	values := tags.Values{}
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, appErrors.Wrap(appErrors.InvalidValue, "write", "", fmt.Errorf("expected Field=Value, got %q", a))
		}
		t, err := tags.Parse(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if _, dup := values[t]; dup {
			return nil, appErrors.Wrap(appErrors.InvalidValue, "write", "", errors.New("tag "+t.FieldName()+" set twice"))
		}
		values[t] = value
	}
	return values, nil
}

func readableTagNames() []string {
	var names []string
	for _, t := range tags.All() {
		if t.Readable() {
			names = append(names, t.FieldName())
		}
	}
	return names
}
