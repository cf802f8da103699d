package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/morlend/ghrelay/internal/config"
	"github.com/morlend/ghrelay/internal/github"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify GitHub configuration and repository access",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck()
	},
}

func runCheck() error {
	cfg := config.Load()

	if err := cfg.GitHub.Validate(); err != nil {
		printError("%v", err)
		return err
	}
	printStatus("Repository", "%s/%s", cfg.GitHub.Owner, cfg.GitHub.Repo)
	printStatus("API base", "%s", cfg.GitHub.BaseURL)

	client := github.NewClientWithBaseURL(cfg.GitHub.Token, cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.BaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := client.GetRepo(ctx)
	if err != nil {
		printError("repository not reachable: %v", err)
		return err
	}
	printSuccess("Repository reachable (%s, default branch %s)", repo.FullName, repo.DefaultBranch)

	if repo.Private {
		printStatus("Visibility", "private")
	} else {
		printWarning("repository is public; subject data will be world-readable")
	}
	return nil
}
