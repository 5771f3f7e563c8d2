package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/livekit/livekit-stage/pkg/seats"
	"github.com/livekit/livekit-stage/pkg/stage"
)

func PrintJSON(obj interface{}) {
	txt, _ := json.Marshal(obj)
	fmt.Println(string(txt))
}

func newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetRowLine(true)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	return table
}

func printSeats(slots []seats.SeatSlot) {
	table := newTable("Seat", "Identity", "Name", "Role", "Since")
	for _, slot := range slots {
		if slot.IsEmpty() {
			table.Append([]string{strconv.Itoa(slot.Index), "", "", "", ""})
			continue
		}
		table.Append([]string{
			strconv.Itoa(slot.Index),
			slot.Identity,
			slot.Metadata.DisplayName,
			slot.Metadata.Role,
			humanize.Time(slot.AssignedAt),
		})
	}
	table.Render()
}

func printBans(bans []*seats.SeatBan) {
	now := time.Now()
	table := newTable("ID", "Identity", "Reason", "Expires", "Created", "Active")
	for _, ban := range bans {
		expires := "never"
		if !ban.IsPermanent() {
			expires = humanize.Time(*ban.ExpiresAt)
		}
		table.Append([]string{
			ban.ID,
			ban.Identity,
			ban.Reason,
			expires,
			humanize.Time(ban.CreatedAt),
			strconv.FormatBool(ban.Active(now)),
		})
	}
	table.Render()
}

func printParticipants(participants []stage.SeatedParticipant) {
	table := newTable("Identity", "Name", "Seat", "Camera", "Microphone", "Local")
	for _, p := range participants {
		seat := ""
		if p.Seat > 0 {
			seat = strconv.Itoa(p.Seat)
		}
		table.Append([]string{
			p.Identity,
			p.Name,
			seat,
			strconv.FormatBool(p.CameraEnabled),
			strconv.FormatBool(p.MicrophoneEnabled),
			strconv.FormatBool(p.IsLocal),
		})
	}
	table.Render()
}
