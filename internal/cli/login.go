package cli

import (
	"fmt"

	"github.com/hourlog/hourlog/internal/platform"
)

type LoginCmd struct {
	Enable  bool `xor:"mode" help:"Install the watcher as a login item."`
	Disable bool `xor:"mode" help:"Remove the login item."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	settings := ctx.Settings.Load()

	if !c.Enable && !c.Disable {
		if settings.LaunchAtLogin {
			fmt.Println("Launch at login is enabled.")
		} else {
			fmt.Println("Launch at login is disabled.")
		}
		return nil
	}

	enable := c.Enable
	if err := platform.SetLaunchAtLogin(enable); err != nil {
		return err
	}

	settings.LaunchAtLogin = enable
	if err := ctx.Settings.Save(settings); err != nil {
		return err
	}

	if enable {
		fmt.Println("The watcher will start at login.")
	} else {
		fmt.Println("Login item removed.")
	}
	return nil
}
