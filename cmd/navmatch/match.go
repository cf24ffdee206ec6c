package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalvas/navmatch/routefile"
)

// matchOutput is one line of `navmatch match` output.
type matchOutput struct {
	URL         string            `json:"url"`
	Route       string            `json:"route"`
	Matched     bool              `json:"matched"`
	MatchedPath string            `json:"matchedPath,omitempty"`
	Params      map[string]any    `json:"params,omitempty"`
	Query       map[string]string `json:"query,omitempty"`
	Hash        string            `json:"hash,omitempty"`
	Partial     bool              `json:"partial,omitempty"`
}

func newMatchCmd(a *app) *cobra.Command {
	var (
		routesPath string
		routeNames []string
	)

	cmd := &cobra.Command{
		Use:   "match --routes FILE URL...",
		Short: "Evaluate each URL against each selected route",
		Long: "Evaluate each URL against each selected route independently and print one\n" +
			"JSON object per (URL, route) pair.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := a.newMatcher()

			f, err := routefile.Load(routesPath, m)
			if err != nil {
				return err
			}
			a.logger.Info("loaded routes", "file", routesPath, "routes", len(f.Routes))

			routes := f.Routes
			if len(routeNames) > 0 {
				routes = make([]*routefile.Route, 0, len(routeNames))
				for _, name := range routeNames {
					r, ok := f.Route(name)
					if !ok {
						return fmt.Errorf("route %q not found in %s", name, routesPath)
					}
					routes = append(routes, r)
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, rawURL := range args {
				for _, r := range routes {
					out := matchOutput{URL: rawURL, Route: r.Name}
					if res := r.Match(m, rawURL); res != nil {
						out.Matched = true
						out.MatchedPath = res.MatchedPath
						out.Params = res.Params
						out.Query = res.Query
						out.Hash = res.Hash
						out.Partial = res.Partial
					}
					a.logger.Debug("evaluated", "url", rawURL, "route", r.Name, "matched", out.Matched)

					if err := enc.Encode(out); err != nil {
						return err
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&routesPath, "routes", "", "Route file (YAML)")
	cmd.Flags().StringSliceVar(&routeNames, "route", nil, "Only evaluate these routes (repeatable)")
	_ = cmd.MarkFlagRequired("routes")

	return cmd
}
