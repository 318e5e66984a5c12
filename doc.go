// Package main implements the yeyo CLI tool.
//
// yeyo keeps the version of a project in a config document (.yeyo.json by
// default) and bumps it across every tracked file at once. Each tracked file
// has a match template: rendered with the current version, it identifies the
// line to rewrite. Only that version string on that line changes.
//
// Command Usage:
//
//	yeyo [-c CONFIG] [--log-level LEVEL] [--no-color] <command>
//
// Commands:
//
//	init                  Create the config; without -f, create and track VERSION.
//	version               Print the version of yeyo.
//	files ls|add|rm|scan  Manage the tracked files.
//	bump <kind>           Bump the version: major, minor, patch, prerelease,
//	                      finalize, or "to VERSION".
//	render-tag-string     Print the tag template rendered with the current version.
//	render-commit-string  Print the commit template rendered with the current version.
//	config show           Print the config as YAML.
//
// Bump Flags:
//
//	--dryrun:          Show what would change, including the git commands, without doing it.
//	--diff:            Print a unified diff of every changed file.
//	--git-tag-before:  Tag the current version before bumping.
//	--git-tag-after:   Commit the tracked files and the config, then tag the new version.
//	--prerel, -p TOKEN: Start a prerelease (dev, a, b or rc) of a major, minor or patch bump.
//
// Global flags may also be set through the environment: YEYO_CONFIG_PATH,
// YEYO_LOG_LEVEL and YEYO_NO_COLOR.
//
// Examples:
//
//	# Start a project at 0.0.0-dev.1 with a VERSION file
//	yeyo init
//
//	# Track a Python module
//	yeyo files add -m '__version__ = "yeyo_version"' mypkg/__init__.py
//
//	# Bump the minor version (e.g. 0.0.0-dev.1 → 0.1.0), commit and tag
//	yeyo bump minor --git-tag-after
//
//	# Start a release candidate (e.g. 0.1.0 → 1.0.0-rc.0), then finalize it
//	yeyo bump major --prerel -p rc
//	yeyo bump finalize
//
// For more detailed API documentation, please see the documentation in the "pkg" package.
package main
