package display

import (
	"fmt"
	"time"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/types"
)

// TimeLayout formats backup timestamps.
const TimeLayout = "2006-01-02 15:04"

// Build returns the view for a known result type.
func Build(result interface{}) (*View, bool) {
	switch v := result.(type) {
	case *types.PathListResult:
		return pathList(v), true
	case *types.TrackedPathList:
		return trackedPaths(v), true
	case *types.ProfileListResult:
		return profileList(v), true
	case *types.ProfileChange:
		return profileChange(v), true
	case *types.BackupResult:
		return backup(v), true
	case *types.SaveResult:
		return save(v), true
	case *types.ApplyResult:
		return apply(v), true
	case *types.BackupListResult:
		return backupList(v), true
	case *types.InitResult:
		return initialized(v), true
	case *types.ConfigDump:
		return configDump(v), true
	case *types.VersionInfo:
		return &View{Summary: []string{fmt.Sprintf("fuxi %s (%s, %s)", v.Version, v.Commit, v.Date)}}, true
	}
	return nil, false
}

func errorDetail(err error) string {
	if err == nil {
		return ""
	}
	return errors.Message(err)
}

func pathList(r *types.PathListResult) *View {
	s := Section{Title: fmt.Sprintf("Profile [profile]%s[/profile]", r.Profile)}
	for _, item := range r.Items {
		line := Line{Status: item.Status, Text: fmt.Sprintf("[path]%s[/path]", item.Path)}
		if item.Error != nil {
			line.Detail = errorDetail(item.Error)
		} else {
			line.Label = item.Kind.String()
		}
		s.Lines = append(s.Lines, line)
	}
	return &View{Sections: []Section{s}}
}

func trackedPaths(r *types.TrackedPathList) *View {
	s := Section{
		Title: fmt.Sprintf("Profile [profile]%s[/profile]", r.Profile),
		Empty: "No tracked paths. Add some with 'fuxi path add <path>'.",
	}
	for _, p := range r.Paths {
		s.Lines = append(s.Lines, Line{Label: p.Kind.String(), Text: fmt.Sprintf("[path]%s[/path]", p.Source)})
	}
	return &View{Sections: []Section{s}}
}

func profileList(r *types.ProfileListResult) *View {
	s := Section{Title: "Profiles", Empty: "No profiles. Create one with 'fuxi profile create <name>'."}
	for _, p := range r.Profiles {
		line := Line{Text: p.Name, Detail: plural(p.Paths, "path")}
		if p.Active {
			line.Status = types.StatusSuccess
			line.Text = fmt.Sprintf("[profile]%s[/profile] (active)", p.Name)
		}
		s.Lines = append(s.Lines, line)
	}
	v := &View{Sections: []Section{s}}
	if r.Active == "" && len(r.Profiles) > 0 {
		v.Warnings = append(v.Warnings, "No active profile. Pick one with 'fuxi profile switch <name>'.")
	}
	return v
}

func profileChange(r *types.ProfileChange) *View {
	v := &View{Summary: []string{fmt.Sprintf("Profile [profile]%s[/profile] %s.", r.Profile, r.Action)}}
	if r.Active == "" {
		v.Warnings = append(v.Warnings, "No active profile. Pick one with 'fuxi profile switch <name>'.")
	} else if r.Action != "switched" && r.Active == r.Profile {
		v.Summary = append(v.Summary, fmt.Sprintf("[profile]%s[/profile] is now the active profile.", r.Active))
	}
	return v
}

func backup(r *types.BackupResult) *View {
	s := Section{Title: fmt.Sprintf("Backing up profile [profile]%s[/profile]", r.Profile)}
	for _, item := range r.Items {
		line := Line{Status: item.Status, Label: item.Kind.String(), Text: fmt.Sprintf("[path]%s[/path]", item.Source)}
		switch {
		case item.Error != nil:
			line.Detail = errorDetail(item.Error)
		case item.Kind == types.KindDirectory:
			line.Detail = plural(item.Files, "file")
			if item.Pruned > 0 {
				line.Detail += fmt.Sprintf(", %d pruned", item.Pruned)
			}
		}
		s.Lines = append(s.Lines, line)
	}

	v := &View{Sections: []Section{s}}
	switch {
	case r.NothingToBackUp:
		v.Summary = append(v.Summary, "Nothing to back up, the repository is up to date.")
	case r.Commit != "":
		v.Summary = append(v.Summary, fmt.Sprintf("Created backup [hash]%s[/hash] %q.", short(r.Commit), r.Message))
	}
	if r.Pushed {
		v.Summary = append(v.Summary, "Pushed to origin.")
	}
	if r.PushError != nil {
		v.Warnings = append(v.Warnings, "Push failed, the backup is only local: "+errorDetail(r.PushError))
	}
	if n := r.FailedItems(); n > 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("%s could not be backed up.", plural(n, "path")))
	}
	return v
}

func save(r *types.SaveResult) *View {
	switch {
	case r.NothingToSave:
		return &View{Summary: []string{"Nothing to save, the repository has no pending changes."}}
	case r.Cancelled:
		return &View{Summary: []string{"Save cancelled."}}
	case !r.Pushed:
		return &View{Summary: []string{fmt.Sprintf("Committed [hash]%s[/hash] %q but it was not pushed.", short(r.Commit), r.Message)}}
	}
	return &View{Summary: []string{fmt.Sprintf("Saved [hash]%s[/hash] %q and pushed to origin.", short(r.Commit), r.Message)}}
}

func apply(r *types.ApplyResult) *View {
	title := fmt.Sprintf("Restoring [profile]%s[/profile] from [hash]%s[/hash]", r.Profile, short(r.Commit))
	if r.DryRun {
		title = fmt.Sprintf("Would restore [profile]%s[/profile] from [hash]%s[/hash]", r.Profile, short(r.Commit))
	}
	s := Section{Title: title, Empty: "The backup holds no files for this profile."}
	for _, a := range r.Actions {
		line := Line{Status: a.Status, Action: a.Kind, Text: fmt.Sprintf("[path]%s[/path]", a.Destination)}
		if a.Destination == "" {
			line.Text = a.RepoPath
		}
		line.Detail = errorDetail(a.Error)
		s.Lines = append(s.Lines, line)
	}

	summary := fmt.Sprintf("%d to create, %d to overwrite, %d unchanged.",
		r.Count(types.ActionCreate), r.Count(types.ActionOverwrite), r.Count(types.ActionNoOp))
	if !r.DryRun {
		summary = fmt.Sprintf("%d created, %d overwritten, %d unchanged.",
			r.Count(types.ActionCreate), r.Count(types.ActionOverwrite), r.Count(types.ActionNoOp))
	}
	v := &View{Sections: []Section{s}, Summary: []string{summary}}
	if r.DryRun {
		v.Summary = append(v.Summary, "Dry run, nothing was written.")
	}
	return v
}

func backupList(r *types.BackupListResult) *View {
	s := Section{
		Title: fmt.Sprintf("Backups on [bold]%s[/bold]", r.Branch),
		Empty: "No backups yet. Create one with 'fuxi backup'.",
	}
	for _, b := range r.Backups {
		line := Line{
			Text:   fmt.Sprintf("[hash]%s[/hash]  %s  %s", b.ShortHash(), b.Timestamp.Local().Format(TimeLayout), b.Message),
			Detail: ago(b.Timestamp),
		}
		if b.IsLast {
			line.Status = types.StatusSuccess
			line.Detail = "last backup"
		}
		s.Lines = append(s.Lines, line)
	}
	return &View{Sections: []Section{s}}
}

func initialized(r *types.InitResult) *View {
	v := &View{}
	if r.Created {
		v.Summary = append(v.Summary, fmt.Sprintf("Created repository at [path]%s[/path] on branch %s.", r.LocalPath, r.Branch))
	} else {
		v.Summary = append(v.Summary, fmt.Sprintf("Using existing repository at [path]%s[/path].", r.LocalPath))
	}
	v.Summary = append(v.Summary, fmt.Sprintf("Remote origin is [code]%s[/code].", r.RemoteURL))
	if r.Replaced != "" {
		v.Warnings = append(v.Warnings, fmt.Sprintf("Replaced the previous repository %s. Its files were left in place.", r.Replaced))
	}
	return v
}

func configDump(r *types.ConfigDump) *View {
	v := &View{Raw: r.Content}
	if r.Exists {
		v.Summary = []string{fmt.Sprintf("# %s", r.Path)}
	} else {
		v.Summary = []string{fmt.Sprintf("# %s does not exist yet, showing defaults", r.Path)}
	}
	return v
}

func short(hash string) string {
	return types.Backup{Hash: hash}.ShortHash()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

var now = time.Now

func ago(t time.Time) string {
	d := now().Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 48*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	default:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	}
}
