package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type roleView struct {
	Role      string   `json:"role"`
	Owner     bool     `json:"owner"`
	Customer  bool     `json:"customer"`
	Abilities []string `json:"abilities"`
}

func newRolesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the tenant roles and their abilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			roles := make([]roleView, 0, len(c.app.TenantRoles()))
			for _, role := range c.app.TenantRoles() {
				roles = append(roles, roleView{
					Role:      role,
					Owner:     c.app.IsOwnerRole(role),
					Customer:  c.app.IsCustomerRole(role),
					Abilities: c.app.AbilitiesFor(role),
				})
			}

			if c.jsonOut {
				return c.printJSON(cmd.OutOrStdout(), roles)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", c.app.ApplicationName(), c.app.TenantName())
			for _, r := range roles {
				var kind []string
				if r.Owner {
					kind = append(kind, "owner")
				}
				if r.Customer {
					kind = append(kind, "customer")
				}
				if len(kind) == 0 {
					kind = append(kind, "member")
				}
				fmt.Fprintf(out, "%-24s %-10s %d abilities\n", r.Role, strings.Join(kind, ","), len(r.Abilities))
			}
			return nil
		},
	}
}

func newAbilitiesCmd(c *cli) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "abilities",
		Short: "Show the abilities and capabilities of a role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.app.IsTenantRole(role) {
				return fmt.Errorf("%w: %q", errUnknownRole, role)
			}

			abilities := c.app.AbilitiesFor(role)
			caps := c.authorizer.Capabilities(role)
			capNames := make([]string, 0, len(caps))
			for _, capability := range caps {
				capNames = append(capNames, capability.String())
			}

			if c.jsonOut {
				return c.printJSON(cmd.OutOrStdout(), map[string]any{
					"role":         role,
					"abilities":    abilities,
					"capabilities": capNames,
				})
			}
			out := cmd.OutOrStdout()
			if len(abilities) == 0 {
				fmt.Fprintf(out, "%s has no abilities\n", role)
				return nil
			}
			for _, a := range abilities {
				fmt.Fprintln(out, a)
			}
			for _, name := range capNames {
				fmt.Fprintln(out, "  "+name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "tenant role")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}
