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
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/cmd/cli/commands"
	"github.com/livekit/livekit-stage/version"
)

// command line client for stage servers
func main() {
	app := &cli.App{
		Name:    "stage-cli",
		Usage:   "take seats and join stage rooms",
		Version: version.Version,
		Flags:   commands.GlobalFlags,
		Before:  commands.InitLogger,
	}

	app.Commands = append(app.Commands, commands.JoinCommands...)
	app.Commands = append(app.Commands, commands.SeatCommands...)
	app.Commands = append(app.Commands, commands.TokenCommands...)

	if err := app.Run(os.Args); err != nil {
		logger.Errorw("command failed", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
