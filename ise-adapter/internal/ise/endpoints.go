package ise

import "fmt"

// Endpoint describes one ERS resource the adapter exposes. The registry is
// fixed at compile time; Validate catches duplicate names or paths before
// any tool is registered.
type Endpoint struct {
	Name        string
	Path        string
	Description string
	Filterable  []string
}

// Endpoints is the full set of ERS resources served as list tools.
var Endpoints = []Endpoint{
	{
		Name:        "network_devices",
		Path:        "networkdevice",
		Description: "Network devices registered in ISE",
		Filterable:  []string{"name", "ipAddress", "description"},
	},
	{
		Name:        "identity_groups",
		Path:        "identitygroup",
		Description: "Identity groups for user categorization",
		Filterable:  []string{"name", "description"},
	},
	{
		Name:        "endpoint_identity_groups",
		Path:        "endpointgroup",
		Description: "Endpoint identity groups for device categorization",
		Filterable:  []string{"name", "description"},
	},
	{
		Name:        "authorization_profiles",
		Path:        "authorizationprofile",
		Description: "Authorization profiles for policy enforcement",
		Filterable:  []string{"name", "description"},
	},
	{
		Name:        "network_access_policies",
		Path:        "networkaccess/policyset",
		Description: "Network access policy sets",
		Filterable:  []string{"name", "description"},
	},
	{
		Name:        "endpoints",
		Path:        "endpoint",
		Description: "Endpoints (devices) known to ISE",
		Filterable:  []string{"name", "mac", "description"},
	},
	{
		Name:        "internal_users",
		Path:        "internaluser",
		Description: "Internal users configured in ISE",
		Filterable:  []string{"name", "email", "description"},
	},
	{
		Name:        "guest_users",
		Path:        "guestuser",
		Description: "Guest users in ISE",
		Filterable:  []string{"name", "guestType", "sponsorUserName"},
	},
	{
		Name:        "active_sessions",
		Path:        "session",
		Description: "Active network access sessions",
		Filterable:  []string{"userName", "endPointMACAddress", "nasIPAddress"},
	},
	{
		Name:        "profiler_profiles",
		Path:        "profilerprofile",
		Description: "Profiler profiles for device classification",
		Filterable:  []string{"name", "description"},
	},
	{
		Name:        "security_groups",
		Path:        "sgt",
		Description: "Security Group Tags (SGTs) for TrustSec",
		Filterable:  []string{"name", "description"},
	},
	{
		Name:        "sxp_connections",
		Path:        "sxpconnections",
		Description: "SXP connections for IP-SGT mapping distribution",
		Filterable:  []string{"ipAddress", "sxpPeer"},
	},
	{
		Name:        "tacacs_command_sets",
		Path:        "tacacscommandsets",
		Description: "TACACS+ command sets for device administration",
		Filterable:  []string{"name", "description"},
	},
	{
		Name:        "tacacs_profiles",
		Path:        "tacacsprofile",
		Description: "TACACS+ profiles for device administration",
		Filterable:  []string{"name", "description"},
	},
	{
		Name:        "admin_users",
		Path:        "adminuser",
		Description: "Administrative users in ISE",
		Filterable:  []string{"name", "email", "firstName", "lastName"},
	},
}

// Validate rejects a registry with missing fields or duplicate names/paths.
func Validate(eps []Endpoint) error {
	names := make(map[string]struct{}, len(eps))
	paths := make(map[string]struct{}, len(eps))
	for _, ep := range eps {
		if ep.Name == "" || ep.Path == "" || ep.Description == "" {
			return fmt.Errorf("endpoint registry entry %q is incomplete", ep.Name)
		}
		if _, dup := names[ep.Name]; dup {
			return fmt.Errorf("endpoint registry has duplicate name %q", ep.Name)
		}
		if _, dup := paths[ep.Path]; dup {
			return fmt.Errorf("endpoint registry has duplicate path %q", ep.Path)
		}
		names[ep.Name] = struct{}{}
		paths[ep.Path] = struct{}{}
	}
	return nil
}
