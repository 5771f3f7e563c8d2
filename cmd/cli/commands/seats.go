package commands

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/livekit/livekit-stage/pkg/seats"
)

var (
	SeatCommands = []*cli.Command{
		{
			Name:  "seats",
			Usage: "list, claim and release seats",
			Subcommands: []*cli.Command{
				{
					Name:   "list",
					Usage:  "show every seat of a room",
					Action: listSeats,
					Flags: []cli.Flag{
						roomFlag,
						&cli.BoolFlag{
							Name:  "json",
							Usage: "print as JSON",
						},
					},
				},
				{
					Name:   "claim",
					Usage:  "claim a seat",
					Action: claimSeat,
					Flags: []cli.Flag{
						roomFlag,
						seatFlag,
						&cli.StringFlag{
							Name:  "for",
							Usage: "claim on behalf of another identity, requires admin",
						},
						&cli.StringFlag{
							Name:  "name",
							Usage: "display name shown on the seat",
						},
						&cli.StringFlag{
							Name:  "role",
							Usage: "role shown on the seat",
						},
					},
				},
				{
					Name:   "release",
					Usage:  "release a seat",
					Action: releaseSeat,
					Flags: []cli.Flag{
						roomFlag,
						seatFlag,
						&cli.BoolFlag{
							Name:  "force",
							Usage: "release whoever holds the seat, requires admin",
						},
						&cli.DurationFlag{
							Name:  "ban",
							Usage: "ban the occupant from seats for this long, implies --force",
						},
						&cli.BoolFlag{
							Name:  "permanent",
							Usage: "ban the occupant permanently, implies --force",
						},
						&cli.StringFlag{
							Name:  "reason",
							Usage: "reason stored with the ban",
						},
					},
				},
			},
		},
		{
			Name:  "bans",
			Usage: "inspect and lift seat bans",
			Subcommands: []*cli.Command{
				{
					Name:   "list",
					Action: listBans,
					Flags: []cli.Flag{
						roomFlag,
						&cli.BoolFlag{
							Name:  "active",
							Usage: "hide expired bans",
						},
					},
				},
				{
					Name:   "clear",
					Action: clearBan,
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:     "id",
							Usage:    "ban ID",
							Required: true,
						},
						&cli.StringFlag{
							Name:  "room",
							Usage: "room the ban belongs to, scopes a signed token",
						},
					},
				},
			},
		},
	}
)

func listSeats(c *cli.Context) error {
	room := c.String("room")
	client, err := apiClient(c, room, false)
	if err != nil {
		return err
	}
	slots, err := client.ListSeats(c.Context, room)
	if err != nil {
		return err
	}
	if c.Bool("json") {
		PrintJSON(slots)
		return nil
	}
	printSeats(slots)
	return nil
}

func claimSeat(c *cli.Context) error {
	room := c.String("room")
	onBehalf := c.String("for")
	client, err := apiClient(c, room, onBehalf != "")
	if err != nil {
		return err
	}

	slot, err := client.Claim(c.Context, room, c.Int("seat"), onBehalf, seats.SeatMetadata{
		DisplayName: c.String("name"),
		Role:        c.String("role"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("seat %d in %s taken by %s\n", slot.Index, room, slot.Identity)
	return nil
}

func releaseSeat(c *cli.Context) error {
	room := c.String("room")
	opts := seats.ReleaseOptions{
		Force:        c.Bool("force"),
		BanDuration:  c.Duration("ban"),
		BanPermanent: c.Bool("permanent"),
		Reason:       c.String("reason"),
	}
	if opts.BanDuration > 0 || opts.BanPermanent {
		opts.Force = true
	}
	client, err := apiClient(c, room, opts.Force)
	if err != nil {
		return err
	}

	ban, err := client.Release(c.Context, room, c.Int("seat"), "", opts)
	if err != nil {
		return err
	}
	fmt.Printf("seat %d in %s released\n", c.Int("seat"), room)
	if ban != nil {
		until := "permanently"
		if !ban.IsPermanent() {
			until = "until " + ban.ExpiresAt.Format(time.RFC3339)
		}
		fmt.Printf("%s banned %s (ban %s)\n", ban.Identity, until, ban.ID)
	}
	return nil
}

func listBans(c *cli.Context) error {
	room := c.String("room")
	client, err := apiClient(c, room, true)
	if err != nil {
		return err
	}
	bans, err := client.LoadBans(c.Context, room)
	if err != nil {
		return err
	}
	if c.Bool("active") {
		now := time.Now()
		active := bans[:0]
		for _, ban := range bans {
			if ban.Active(now) {
				active = append(active, ban)
			}
		}
		bans = active
	}
	printBans(bans)
	return nil
}

func clearBan(c *cli.Context) error {
	client, err := apiClient(c, c.String("room"), true)
	if err != nil {
		return err
	}
	if err = client.ClearBan(c.Context, c.String("id")); err != nil {
		return err
	}
	fmt.Println("cleared ban", c.String("id"))
	return nil
}
