package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/breppy/breppy/internal/api"
	"github.com/breppy/breppy/internal/config"
	"github.com/breppy/breppy/internal/log"
	"github.com/breppy/breppy/internal/upload"
)

func (a *app) newUploadCmd() *cobra.Command {
	var (
		tracker         string
		meta            upload.Metadata
		descriptionFile string
		checkOnly       bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file.torrent>",
		Short: "Upload a torrent file to a tracker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.bootstrap(); err != nil {
				return err
			}

			var form map[string]string
			if !checkOnly {
				if descriptionFile != "" {
					data, err := os.ReadFile(descriptionFile)
					if err != nil {
						return fmt.Errorf("read description: %w", err)
					}
					meta.Description = string(data)
				}

				var err error
				form, err = upload.PrepareUpload(a.cfg, tracker, meta)
				if err != nil {
					return err
				}
			}

			resp, err := a.client.Build(cmd.Context(), args[0], tracker, form)
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&tracker, "tracker", "t", "", "Tracker name (Emp, Ent, Pbay)")
	flags.StringVar(&meta.Title, "title", "", "Torrent title")
	flags.IntVar(&meta.Category, "category", 0, "Tracker category id")
	flags.StringVar(&meta.Cover, "cover", "", "Cover image URL")
	flags.StringVar(&meta.Tags, "tags", "", "Space separated tag list")
	flags.StringVar(&meta.Description, "description", "", "BBCode description")
	flags.StringVar(&descriptionFile, "description-file", "", "Read the BBCode description from a file")
	flags.BoolVar(&checkOnly, "check-only", false, "Only run the tracker dupe check with the default payload")
	_ = cmd.MarkFlagRequired("tracker")
	cmd.MarkFlagsMutuallyExclusive("description", "description-file")

	return cmd
}

func (a *app) newCollageCmd() *cobra.Command {
	var tracker string

	cmd := &cobra.Command{
		Use:   "collage <collage-id> <torrent-url>",
		Short: "Add a torrent to a collage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCollageID(args[0])
			if err != nil {
				return err
			}
			if err := a.bootstrap(); err != nil {
				return err
			}

			resp, err := a.client.Collage(cmd.Context(), id, args[1], tracker)
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&tracker, "tracker", "t", "", "Tracker name (Emp, Ent, Pbay)")
	_ = cmd.MarkFlagRequired("tracker")
	return cmd
}

func (a *app) newLegacyCollageCmd() *cobra.Command {
	var tracker string

	cmd := &cobra.Command{
		Use:   "legacy-collage <collage-id> <torrent-url>",
		Short: "Add a torrent to a collage on an old Luminance tracker",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCollageID(args[0])
			if err != nil {
				return err
			}
			if err := a.bootstrap(); err != nil {
				return err
			}

			resp, err := a.client.LegacyCollage(cmd.Context(), id, args[1], tracker)
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&tracker, "tracker", "t", config.TrackerPbay, "Tracker name")
	return cmd
}

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.ResolvePath(a.v.GetString("config"))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
				return err
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the loaded configuration as TOML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.bootstrap(); err != nil {
					return err
				}
				data, err := config.Marshal(a.cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "List config values that are still empty",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.bootstrap(); err != nil {
					return err
				}
				keys, err := config.FindEmptyKeys(a.cfg)
				if err != nil {
					return err
				}
				for _, k := range keys {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), k); err != nil {
						return err
					}
				}
				return nil
			},
		},
	)
	return cmd
}

func parseCollageID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid collage id %q", s)
	}
	return id, nil
}

// printResponse logs the status line and writes the body to w.
func printResponse(w io.Writer, resp *api.Response) error {
	log.Info("main").
		Int("status", resp.StatusCode).
		Str("url", resp.URL).
		Msg(resp.Status)

	_, err := w.Write(resp.Body)
	return err
}
