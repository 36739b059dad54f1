// Package config provides the server tunables.
//
// Defaults are compiled in and match the published game rules (4-player
// rooms, 10–30 second rounds, 5 second disconnect grace). An optional
// JSON file can override any subset of them:
//
//	{
//	  "max_players": 8,
//	  "min_timer_ms": 5000,
//	  "allow_self_pass": false
//	}
//
// Load validates the result, so a config that passes Load is safe to
// hand to the service unchecked.
package config
