// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/livekit/livekit-stage/pkg/auth"
	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/seats"
	"github.com/livekit/livekit-stage/pkg/service"
	"github.com/livekit/livekit-stage/pkg/utils"
)

func generateKeys(_ *cli.Context) error {
	apiKey := utils.NewGuid(utils.APIKeyPrefix)
	secret := utils.RandomSecret()
	fmt.Println("API Key: ", apiKey)
	fmt.Println("API Secret: ", secret)
	return nil
}

func printPorts(c *cli.Context) error {
	conf, err := getConfig(c)
	if err != nil {
		return err
	}

	fmt.Println("TCP Ports")
	fmt.Printf("%d - HTTP service\n", conf.Server.Port)
	if conf.Prometheus.Port > 0 {
		fmt.Printf("%d - Prometheus\n", conf.Prometheus.Port)
	}
	return nil
}

func helpVerbose(c *cli.Context) error {
	generatedFlags, err := config.GenerateCLIFlags(baseFlags, false)
	if err != nil {
		return err
	}

	c.App.Flags = append(baseFlags, generatedFlags...)
	return cli.ShowAppHelp(c)
}

func createToken(c *cli.Context) error {
	room := c.String("room")
	identity := c.String("identity")

	conf, err := getConfig(c)
	if err != nil {
		return err
	}
	if err = conf.ValidateKeys(); err != nil {
		return err
	}

	// use the first API key in lexical order
	keys := make([]string, 0, len(conf.Keys))
	for k := range conf.Keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	apiKey := keys[0]

	grant := &auth.VideoGrant{
		RoomJoin:     true,
		RoomAdmin:    c.Bool("admin"),
		Room:         room,
		CanSubscribe: true,
	}
	token, err := auth.NewAccessToken(apiKey, conf.Keys[apiKey]).
		AddGrant(grant).
		SetIdentity(identity).
		SetValidFor(30 * 24 * time.Hour).
		ToJWT()
	if err != nil {
		return err
	}

	fmt.Println("Token:", token)
	return nil
}

func listSeats(c *cli.Context) error {
	conf, err := getConfig(c)
	if err != nil {
		return err
	}
	if !conf.Redis.IsConfigured() {
		return fmt.Errorf("redis is not configured, seats of a running server are not reachable")
	}

	store, err := service.InitializeStore(conf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	room := c.String("room")
	occupied, err := store.LoadSeats(ctx, room)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetRowLine(true)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Seat", "Identity", "Name", "Role", "Assigned"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT,
	})
	for _, slot := range seats.Layout(room, conf.Seats.Count, occupied) {
		assigned := ""
		if !slot.IsEmpty() {
			assigned = humanize.Time(slot.AssignedAt)
		}
		table.Append([]string{
			strconv.Itoa(slot.Index),
			slot.Identity,
			slot.Metadata.DisplayName,
			slot.Metadata.Role,
			assigned,
		})
	}
	table.Render()
	return nil
}
