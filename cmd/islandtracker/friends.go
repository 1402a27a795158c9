package main

import (
	"context"

	"islandtracker/internal/flow"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newFriendsCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{Use: "friends", Short: "Friends and friend requests"}

	cmd.AddCommand(
		readCmd("list", "List friends and their latest prices", current,
			func(ctx context.Context, a *app, force bool) (any, flow.Source, bool, error) {
				r, err := a.service.GetFriends(ctx, force)
				return r.Value, r.Source, r.Stale, err
			}),
		readCmd("requests", "List pending friend requests", current,
			func(ctx context.Context, a *app, force bool) (any, flow.Source, bool, error) {
				r, err := a.service.GetFriendRequests(ctx, force)
				return r.Value, r.Source, r.Stale, err
			}),
		writeCmd("add KEY", "Send a friend request", current,
			func(ctx context.Context, a *app, key string) error { return a.service.SubmitFriendRequest(ctx, key) }),
		writeCmd("approve KEY", "Approve a friend request", current,
			func(ctx context.Context, a *app, key string) error { return a.service.ApproveFriendRequest(ctx, key) }),
		writeCmd("reject KEY", "Reject a friend request", current,
			func(ctx context.Context, a *app, key string) error { return a.service.RejectFriendRequest(ctx, key) }),
		writeCmd("remove KEY", "Remove a friend", current,
			func(ctx context.Context, a *app, key string) error { return a.service.RemoveFriend(ctx, key) }),
	)
	return cmd
}

type readFn func(ctx context.Context, a *app, force bool) (value any, src flow.Source, stale bool, err error)

func readCmd(use, short string, current func() *app, read readFn) *cobra.Command {
	var refresh bool
	var opts outputOpts
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			v, src, stale, err := read(cmd.Context(), a, refresh)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{"source": src.String(), "stale": stale}).Info(use)
			return render(a.out, v, opts)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass a fresh cache entry")
	cmd.Flags().StringVar(&opts.query, "query", "", "JMESPath projection of the output")
	cmd.Flags().StringVar(&opts.filter.Expr, "where", "", "JMESPath boolean filter applied to each item")
	cmd.Flags().BoolVar(&opts.filter.Negate, "not", false, "keep items the --where filter rejects")
	return cmd
}

func writeCmd(use, short string, current func() *app, write func(ctx context.Context, a *app, key string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := argKey(args)
			if err != nil {
				return err
			}
			return write(cmd.Context(), current(), key)
		},
	}
}
