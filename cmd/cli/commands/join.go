package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v2"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/auth"
	"github.com/livekit/livekit-stage/pkg/client"
	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/rtc"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/seats"
	"github.com/livekit/livekit-stage/pkg/service"
	"github.com/livekit/livekit-stage/pkg/stage"
)

var (
	JoinCommands = []*cli.Command{
		{
			Name:   "join",
			Usage:  "join a room as a viewer, optionally taking a seat",
			Action: joinRoom,
			Flags: []cli.Flag{
				roomFlag,
				&cli.IntFlag{
					Name:  "seat",
					Usage: "take this seat after joining, starting at 1",
				},
				&cli.StringFlag{
					Name:  "name",
					Usage: "display name shown on the seat",
				},
				&cli.StringFlag{
					Name:  "video",
					Usage: "an ivf file published as the camera",
				},
				&cli.StringFlag{
					Name:  "audio",
					Usage: "an ogg file published as the microphone",
				},
				&cli.StringFlag{
					Name:  "gateway-url",
					Usage: "credential endpoint, defaults to the token endpoint of --url",
				},
			},
		},
	}
)

const changeDebounce = 200 * time.Millisecond

func joinRoom(c *cli.Context) error {
	room := c.String("room")
	identity := c.String("identity")

	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	if v := c.String("video"); v != "" {
		conf.Media.VideoFile = expandUser(v)
	}
	if a := c.String("audio"); a != "" {
		conf.Media.AudioFile = expandUser(a)
	}
	if u := c.String("gateway-url"); u != "" {
		conf.Credentials.GatewayURL = u
	}
	if conf.Credentials.GatewayURL == "" {
		conf.Credentials.GatewayURL = strings.TrimRight(c.String("url"), "/") + "/token"
	}

	bearer, err := bearerToken(c, room, false)
	if err != nil {
		return err
	}
	sc, err := newStageClient(conf, c.String("url"), bearer)
	if err != nil {
		return err
	}
	defer sc.Close()

	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	coordinator := sc.Coordinator()
	coordinator.OnStateChanged(func(state types.ConnectionState) {
		fmt.Println("connection:", state.String())
	})
	coordinator.OnError(func(key types.SessionKey, err error) {
		fmt.Printf("connection to %s failed: %v\n", key.Room, err)
	})
	printChanges := debounce.New(changeDebounce)
	coordinator.Bus().OnChange(func() {
		printChanges(func() {
			printParticipants(sc.Participants())
		})
	})

	if !sc.Join(ctx, room, identity, rtc.ConnectOptions{}) {
		if lastErr := coordinator.LastError(); lastErr != nil {
			return lastErr
		}
		return fmt.Errorf("could not join %s", room)
	}
	if err = sc.Watch(ctx, room); err != nil {
		logger.Warnw("could not watch seats", err, "room", room)
	}

	meta := seats.SeatMetadata{DisplayName: c.String("name")}
	if seat := c.Int("seat"); seat > 0 {
		takeSeat(ctx, sc, room, identity, seat, meta)
	}

	fmt.Println("commands: s <seat> take seat, l leave seat, c camera, m microphone, p participants, q quit")
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
	}()

	for {
		select {
		case <-ctx.Done():
			leaveSeat(sc, room, identity)
			return nil
		case line, ok := <-lines:
			if !ok || line == "q" {
				leaveSeat(sc, room, identity)
				return nil
			}
			handleLine(ctx, sc, room, identity, meta, line)
		}
	}
}

func handleLine(ctx context.Context, sc *stage.Client, room, identity string, meta seats.SeatMetadata, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	coordinator := sc.Coordinator()
	switch fields[0] {
	case "s":
		if len(fields) < 2 {
			fmt.Println("usage: s <seat>")
			return
		}
		seat, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Println("invalid seat:", fields[1])
			return
		}
		takeSeat(ctx, sc, room, identity, seat, meta)
	case "l":
		if err := sc.LeaveSeat(ctx, room, identity); err != nil {
			fmt.Println("could not leave seat:", err)
		}
	case "c":
		if !coordinator.ToggleCamera(ctx) {
			fmt.Println("could not toggle camera")
		}
	case "m":
		if !coordinator.ToggleMicrophone(ctx) {
			fmt.Println("could not toggle microphone")
		}
	case "p":
		printParticipants(sc.Participants())
		printSeats(coordinator.Bus().SeatsFor(room))
	default:
		fmt.Println("unknown command:", fields[0])
	}
}

func takeSeat(ctx context.Context, sc *stage.Client, room, identity string, seat int, meta seats.SeatMetadata) {
	slot, err := sc.TakeSeat(ctx, room, seat-1, identity, meta, rtc.ConnectOptions{})
	if slot != nil {
		fmt.Printf("took seat %d\n", slot.Index)
	}
	if err != nil {
		fmt.Println("could not take seat:", err)
	}
}

func leaveSeat(sc *stage.Client, room, identity string) {
	if sc.Roster().SeatOf(room, identity) == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sc.LeaveSeat(ctx, room, identity); err != nil {
		logger.Warnw("could not leave seat", err, "room", room)
	}
}

func newStageClient(conf *config.Config, serverURL, bearer string) (*stage.Client, error) {
	source := auth.StaticAuthSource(bearer)
	gateway := auth.NewCachingGateway(
		auth.NewHTTPGateway(conf.Credentials, source),
		conf.Credentials.CacheSize,
		conf.Credentials.ExpiryBuffer,
	)

	l := logger.GetLogger()
	store := service.NewAPIClient(service.APIClientParams{
		URL:     serverURL,
		Auth:    source,
		Timeout: conf.Credentials.RequestTimeout,
	})
	bus := rtc.NewEventBus(rtc.EventBusParams{
		Logger: l,
		SeatInconsistencyHandler: func(inconsistency rtc.SeatInconsistency) {
			fmt.Printf("%s left the room while on seat %d\n", inconsistency.Identity, inconsistency.Index)
		},
	})
	coordinator := rtc.NewCoordinator(rtc.CoordinatorParams{
		Config:     conf.Session,
		Gateway:    gateway,
		Bus:        bus,
		Transports: client.NewTransportFactory(conf.Session, client.DefaultDialer, l),
		Devices:    client.NewFileDevices(conf.Media, l),
		Logger:     l,
	})
	roster := seats.NewRoster(seats.RosterParams{
		Store:  store,
		Config: conf.Seats,
		Logger: l,
	})
	return stage.NewClient(stage.ClientParams{
		Coordinator: coordinator,
		Roster:      roster,
		Logger:      l,
	}), nil
}

func expandUser(p string) string {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return p
	}
	return expanded
}
