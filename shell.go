package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/CodedInternet/gonxt/brick"
	"github.com/CodedInternet/gonxt/nxt"
	"github.com/abiosoft/ishell"
	"github.com/pkg/errors"
)

var ErrUsage = errors.New("incorrect number of arguments")

// parseMotorArgs reads "<name> <power> [flag...]" where each flag is one of
// brake, sync, speed, or a ramp mode.
func parseMotorArgs(args []string) (name string, cmd brick.MotorCommand, err error) {
	if len(args) < 2 {
		err = errors.Wrap(ErrUsage, "motor <name> <power> [brake|sync|speed|up|down]")
		return
	}
	name = args[0]
	if cmd.Power, err = strconv.Atoi(args[1]); err != nil {
		err = errors.Wrapf(err, "power %q", args[1])
		return
	}

	for _, flag := range args[2:] {
		switch strings.ToLower(flag) {
		case "brake":
			cmd.Brake = true
		case "sync":
			cmd.Sync = true
		case "speed":
			cmd.SpeedRegulation = true
		default:
			if cmd.Ramp, err = nxt.ParseRampMode(flag); err != nil {
				return
			}
		}
	}
	return
}

// parseDriveArgs reads "<x> <y>" joystick coordinates.
func parseDriveArgs(args []string) (x, y float64, err error) {
	if len(args) != 2 {
		err = errors.Wrap(ErrUsage, "drive <x> <y>")
		return
	}
	if x, err = strconv.ParseFloat(args[0], 64); err != nil {
		return
	}
	y, err = strconv.ParseFloat(args[1], 64)
	return
}

func formatState(reports map[string]brick.MotorReport) string {
	if len(reports) == 0 {
		return "no motors updated yet"
	}

	names := make([]string, 0, len(reports))
	for name := range reports {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		rep := reports[name]
		fmt.Fprintf(&sb, "%-8s %s power=%4d mode=%s regulation=%s run=%s\n",
			name, rep.Port, rep.Power, rep.Mode, rep.RegulationMode, rep.RunState)
	}
	return sb.String()
}

func createAccount(c *ishell.Context, admin bool) {
	// disable the '>>>' for cleaner same line input.
	c.ShowPrompt(false)
	defer c.ShowPrompt(true) // yes, revert when done.

	var email string
	if len(c.Args) >= 1 {
		email = c.Args[0]
	} else {
		c.Print("Email: ")
		email = c.ReadLine()
	}

	var password string
	if len(c.Args) >= 2 {
		password = c.Args[1]
	} else {
		c.Print("Password: ")
		password = c.ReadPassword()
	}

	user, err := newUser(email, password, admin)
	if err != nil {
		c.Err(err)
		return
	}
	if err := ENV.DB.Save(user); err != nil {
		c.Err(err)
		return
	}

	if admin {
		c.Println("Superuser created")
	} else {
		c.Println("User created")
	}
}

func newShell() *ishell.Shell {
	motorNames := func([]string) []string {
		return ENV.Brick.MotorNames()
	}

	shell := ishell.New()
	shell.Println("NXT development shell")
	shell.ShowPrompt(true)

	shell.AddCmd(&ishell.Cmd{
		Name: "createsuperuser",
		Help: "createsuperuser <email> <password>, may also edit presets",
		Func: func(c *ishell.Context) {
			createAccount(c, true)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "createuser",
		Help: "createuser <email> <password>, may only drive",
		Func: func(c *ishell.Context) {
			createAccount(c, false)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name:      "motor",
		Completer: motorNames,
		Help:      "motor <name> <power> [brake|sync|speed|up|down]",
		Func: func(c *ishell.Context) {
			name, cmd, err := parseMotorArgs(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("Setting motor %s to %d\n", name, cmd.Power)
			if err := ENV.Brick.SetMotor(name, cmd); err != nil {
				c.Err(err)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "stop",
		Help: "stop [brake]",
		Func: func(c *ishell.Context) {
			brake := len(c.Args) > 0 && strings.ToLower(c.Args[0]) == "brake"
			if err := ENV.Brick.Stop(brake); err != nil {
				c.Err(err)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "drive",
		Help: "drive <x> <y>",
		Func: func(c *ishell.Context) {
			x, y, err := parseDriveArgs(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if err := ENV.Brick.Drive(x, y); err != nil {
				c.Err(err)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "state",
		Help: "Shows the last state sent to each motor",
		Func: func(c *ishell.Context) {
			c.Print(formatState(ENV.Brick.State()))
		},
	})

	{
		presetCmd := &ishell.Cmd{
			Name: "preset",
			Help: "list or apply stored presets",
		}

		presetCmd.AddCmd(&ishell.Cmd{
			Name: "list",
			Help: "List the stored presets",
			Func: func(c *ishell.Context) {
				var presets []Preset
				if err := ENV.DB.All(&presets); err != nil {
					c.Err(err)
					return
				}
				for _, p := range presets {
					c.Printf("%s (%d motors)\n", p.Name, len(p.Motors))
				}
			},
		})

		presetCmd.AddCmd(&ishell.Cmd{
			Name: "apply",
			Help: "preset apply <name>",
			Func: func(c *ishell.Context) {
				if len(c.Args) != 1 {
					c.Err(errors.Wrap(ErrUsage, "preset apply <name>"))
					return
				}
				if _, err := applyPreset(ENV.DB, ENV.Brick, c.Args[0]); err != nil {
					c.Err(err)
				}
			},
		})

		shell.AddCmd(presetCmd)
	}

	return shell
}
