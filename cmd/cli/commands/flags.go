package commands

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/auth"
	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/service"
)

var (
	GlobalFlags = []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Usage:   "URL of the stage server",
			Value:   "http://localhost:7890",
			EnvVars: []string{"LIVEKIT_STAGE_URL"},
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "access token sent to the stage server, signed from --api-key and --api-secret when empty",
			EnvVars: []string{"LIVEKIT_STAGE_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			EnvVars: []string{"LIVEKIT_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "api-secret",
			EnvVars: []string{"LIVEKIT_API_SECRET"},
		},
		&cli.StringFlag{
			Name:    "identity",
			Aliases: []string{"i"},
			Usage:   "identity used when signing tokens",
			Value:   "stage-cli",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "path to a config file with session, seats and media settings",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log at debug level",
		},
	}

	roomFlag = &cli.StringFlag{
		Name:     "room",
		Aliases:  []string{"r"},
		Usage:    "name of the room",
		Required: true,
	}
	seatFlag = &cli.IntFlag{
		Name:     "seat",
		Aliases:  []string{"s"},
		Usage:    "seat number, starting at 1",
		Required: true,
	}
)

const signedTokenTTL = time.Hour

func InitLogger(c *cli.Context) error {
	conf := &config.LoggingConfig{}
	conf.Level = "info"
	if c.Bool("verbose") {
		conf.Level = "debug"
	}
	config.InitLoggerFromConfig(conf)
	return nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	var body string
	if path := c.String("config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		body = string(data)
	}
	return config.NewConfig(body, true, nil, nil)
}

// bearerToken returns --token, or signs one with admin rights over room when api
// credentials are given. An empty room signs a token valid for every room.
func bearerToken(c *cli.Context, room string, admin bool) (string, error) {
	if token := c.String("token"); token != "" {
		return token, nil
	}
	apiKey, apiSecret := c.String("api-key"), c.String("api-secret")
	if apiKey == "" || apiSecret == "" {
		return "", errors.New("one of --token or --api-key and --api-secret is required")
	}
	logger.Debugw("signing access token", "identity", c.String("identity"), "room", room, "admin", admin)
	return auth.NewAccessToken(apiKey, apiSecret).
		SetIdentity(c.String("identity")).
		SetValidFor(signedTokenTTL).
		AddGrant(&auth.VideoGrant{
			RoomJoin:     true,
			RoomAdmin:    admin,
			Room:         room,
			CanSubscribe: true,
		}).
		ToJWT()
}

func apiClient(c *cli.Context, room string, admin bool) (*service.APIClient, error) {
	token, err := bearerToken(c, room, admin)
	if err != nil {
		return nil, err
	}
	return service.NewAPIClient(service.APIClientParams{
		URL:  c.String("url"),
		Auth: auth.StaticAuthSource(token),
	}), nil
}
