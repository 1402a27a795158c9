package main

import (
	"fmt"
	"os"

	"islandtracker/internal/types"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

// profileFile is the YAML shape of a profile; the fruit is given by name.
type profileFile struct {
	Name       string `yaml:"name"`
	IslandName string `yaml:"islandName"`
	Fruit      string `yaml:"fruit"`
	Status     string `yaml:"status"`
	TimeZone   string `yaml:"timeZone"`
}

func parseProfile(b []byte) (types.Profile, error) {
	var pf profileFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return types.Profile{}, fmt.Errorf("profile file: %w", err)
	}
	p := types.DefaultProfile()
	if pf.Fruit != "" {
		f, err := types.ParseFruit(pf.Fruit)
		if err != nil {
			return types.Profile{}, err
		}
		p.Fruit = f
	}
	if pf.Status != "" {
		p.Status = pf.Status
	}
	p.Name = pf.Name
	p.IslandName = pf.IslandName
	p.TimeZone = pf.TimeZone
	return p, nil
}

func readProfile(path string) (types.Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return types.Profile{}, err
	}
	return parseProfile(b)
}

func newProfileCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{Use: "profile", Short: "Show, edit and publish the island profile"}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the locally saved profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			return render(a.out, a.service.GetProfile(cmd.Context()), outputOpts{})
		},
	})

	var setFile string
	set := &cobra.Command{
		Use:   "set",
		Short: "Save a profile from a YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			p, err := readProfile(setFile)
			if err != nil {
				return err
			}
			if err := a.service.SaveProfile(cmd.Context(), p); err != nil {
				return err
			}
			return render(a.out, p, outputOpts{})
		},
	}
	set.Flags().StringVarP(&setFile, "file", "f", "profile.yml", "profile YAML file")
	cmd.AddCommand(set)

	var pushFile string
	push := &cobra.Command{
		Use:   "push",
		Short: "Create or update the remote profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			var p *types.Profile
			if pushFile != "" {
				fp, err := readProfile(pushFile)
				if err != nil {
					return err
				}
				p = &fp
			}
			st, err := a.service.UpsertUserProfile(cmd.Context(), p)
			if err != nil {
				return err
			}
			return render(a.out, map[string]string{"registration": st.String()}, outputOpts{})
		},
	}
	push.Flags().StringVarP(&pushFile, "file", "f", "", "push this YAML profile instead of the saved one")
	cmd.AddCommand(push)

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the registration state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			st, err := a.service.RegistrationState(cmd.Context())
			if err != nil {
				return err
			}
			return render(a.out, map[string]string{"registration": st.String()}, outputOpts{})
		},
	})
	return cmd
}
