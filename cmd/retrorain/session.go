// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aCallin/retro-rain/catalog"
	"github.com/aCallin/retro-rain/mixer"
)

func printNotifier(out io.Writer) mixer.NotifierFuncs {
	return mixer.NotifierFuncs{
		Channel: func(id string, m mixer.Mode) { fmt.Fprintf(out, "%s: %s\n", id, m) },
		Master:  func(m mixer.Mode) { fmt.Fprintf(out, "master: %s\n", m) },
	}
}

// session runs line commands against a controller.
type session struct {
	ctl *mixer.Controller
	cat *catalog.Catalog
	out io.Writer
}

// run executes commands until "quit" or the end of in. Command errors are
// printed and do not end the session.
func (s *session) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		quit, err := s.exec(sc.Text())
		if err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
		if quit {
			return nil
		}
	}

	return sc.Err()
}

func (s *session) exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch {
	case cmd == "quit" || cmd == "exit":
		return true, nil
	case cmd == "list":
		s.list()
		return false, nil
	case cmd == "master" && len(args) == 0:
		return false, s.ctl.ToggleMaster()
	case cmd == "toggle" && len(args) == 1:
		return false, s.ctl.ToggleChannel(args[0])
	case cmd == "volume" && len(args) == 2:
		v, err := parseVolume(args[1])
		if err != nil {
			return false, err
		}
		return false, s.ctl.SetChannelVolume(args[0], v)
	case cmd == "master-volume" && len(args) == 1:
		v, err := parseVolume(args[0])
		if err != nil {
			return false, err
		}
		return false, s.ctl.SetMasterVolume(v)
	default:
		return false, fmt.Errorf("unknown command %q", line)
	}
}

func parseVolume(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: volume %q", mixer.ErrInvalidArgument, s)
	}
	return v, nil
}

func (s *session) list() {
	st := s.ctl.State()
	fmt.Fprintf(s.out, "master  %-8s %3.0f%%\n", st.Master, st.MasterVolume*100)

	for _, id := range s.cat.IDs() {
		ch := s.ctl.Channel(id)
		fmt.Fprintf(s.out, "  %-24s %-8s %3.0f%%\n", id, ch.Mode, ch.Volume*100)
	}
}
