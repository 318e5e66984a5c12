package cmd

// Common flag names and descriptions
const (
	// Global flags
	FlagConfigPath = "config-path"
	FlagLogLevel   = "log-level"
	FlagNoColor    = "no-color"

	// init
	FlagFile            = "file"
	FlagStartingVersion = "starting-version"
	FlagFromGit         = "from-git"
	FlagForce           = "force"

	// files
	FlagMatchTemplate = "match-template"
	FlagDetect        = "detect"

	// bump
	FlagDryRun          = "dryrun"
	FlagDiff            = "diff"
	FlagGitTagBefore    = "git-tag-before"
	FlagGitTagAfter     = "git-tag-after"
	FlagPrerel          = "prerel"
	FlagPrereleaseToken = "prerelease-token"

	DescConfigPath      = "Path to the yeyo config document (.json, .yaml or .yml)"
	DescLogLevel        = "Log level: debug, info, warn or none"
	DescNoColor         = "Disable colored output"
	DescFile            = "File to track. May be repeated. Without it, a VERSION file is created and tracked"
	DescStartingVersion = "Version to start from"
	DescFromGit         = "Start from the latest git tag instead of --starting-version"
	DescForce           = "Overwrite an existing config"
	DescMatchTemplate   = "Template identifying the line to rewrite; yeyo_version stands for the current version"
	DescDetect          = "Derive the match template from the line holding the current version"
	DescDryRun          = "Show what would change without writing files or touching git"
	DescDryRunConfig    = "Print the resulting config without writing anything"
	DescDiff            = "Print a unified diff of every changed file"
	DescGitTagBefore    = "Tag the current version before bumping"
	DescGitTagAfter     = "Commit the bump and tag the new version"
	DescPrerel          = "Start a prerelease of the bumped version"
	DescPrereleaseToken = "Prerelease token: dev, a, b or rc"
)

// envPrefix prefixes the environment variables bound to global flags, e.g.
// YEYO_CONFIG_PATH.
const envPrefix = "YEYO"
