// Package yeyo provides a library for managing semantic version bumps across
// the files of a project.
//
// It provides functionalities for:
//   - Parsing and formatting versions of the form MAJOR.MINOR.PATCH[-TOKEN.N],
//     where TOKEN is one of dev, a, b or rc.
//   - Computing major, minor, patch, prerelease and finalize transitions.
//   - Tracking the files that carry the version, each with a match template
//     that identifies the line to rewrite.
//   - Rewriting those lines, or reporting what would change in a dry run.
//   - Rendering tag and commit strings and driving git to tag the state
//     before a bump, and to commit and tag the state after it.
//
// The state of a project lives in a config document (.yeyo.json by default):
//
//	{
//	  "version": "0.1.0-dev.2",
//	  "tag_template": "v{{ yeyo_version }}",
//	  "commit_template": "{{ yeyo_version }}",
//	  "files": [
//	    {"file_path": "VERSION", "match_template": "yeyo_version"}
//	  ]
//	}
//
// Usage Example:
//
//	store := yeyo.NewConfigStore(nil, yeyo.DefaultConfigPath)
//	cfg, err := store.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bumper := yeyo.NewBumper(nil, yeyo.NewExecGit("", false, os.Stdout, nil), store, nil)
//	res, err := bumper.Bump(ctx, cfg, yeyo.BumpOptions{Kind: yeyo.BumpKindPatch, TagAfter: true})
//	if err != nil {
//	    log.Fatalf("version bump failed: %v", err)
//	}
//	log.Printf("bumped %s to %s", res.Old, res.New)
package yeyo
