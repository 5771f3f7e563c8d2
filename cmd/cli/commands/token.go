package commands

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/livekit/livekit-stage/pkg/auth"
)

var (
	TokenCommands = []*cli.Command{
		{
			Name:   "create-token",
			Usage:  "create an access token for the stage server",
			Action: createToken,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "participant",
					Aliases: []string{"p"},
					Usage:   "identity the token is issued to, defaults to --identity",
				},
				&cli.StringFlag{
					Name:  "room",
					Usage: "name of the room, empty to allow every room",
				},
				&cli.BoolFlag{
					Name:  "admin",
					Usage: "allow moderating seats and bans",
				},
				&cli.BoolFlag{
					Name:  "publish",
					Usage: "allow publishing media",
				},
				&cli.DurationFlag{
					Name:  "valid-for",
					Value: 6 * time.Hour,
				},
			},
		},
	}
)

func createToken(c *cli.Context) error {
	apiKey, apiSecret := c.String("api-key"), c.String("api-secret")
	if apiKey == "" || apiSecret == "" {
		return fmt.Errorf("api-key and api-secret are required")
	}
	identity := c.String("participant")
	if identity == "" {
		identity = c.String("identity")
	}

	validFor := c.Duration("valid-for")
	token, err := auth.NewAccessToken(apiKey, apiSecret).
		SetIdentity(identity).
		SetValidFor(validFor).
		AddGrant(&auth.VideoGrant{
			RoomJoin:     true,
			RoomAdmin:    c.Bool("admin"),
			Room:         c.String("room"),
			CanPublish:   c.Bool("publish"),
			CanSubscribe: true,
		}).
		ToJWT()
	if err != nil {
		return err
	}

	fmt.Println("access token:", token)
	fmt.Println("expires:", humanize.Time(time.Now().Add(validFor)))
	return nil
}
