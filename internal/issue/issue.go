// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	IncludeNotFoundId Id = iota + 1
	CurrentFileMissingId
	NoIncludeDirectiveId
	ConfigLoadFailedId
	FeatureDisabledId
	EditorLaunchFailedId
	SettingsImportFailedId
)

type MarkdownMsg string

type Issue struct {
	id    Id          // ID used to lookup the issue
	mdMsg MarkdownMsg // Markdown text that will be rendered
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue's markdown with the given glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	includeNotFoundIssue = &Issue{
		id: IncludeNotFoundId,
		mdMsg: `
# Included file not found

None of the searched locations contains the referenced file.

## Search order
1. Folders above the current file's folder
2. The engine project's ` + "`Assets`" + ` folder
3. ` + "`Packages/<name>`" + ` and ` + "`Library/PackageCache/<name>@<version>`" + ` for package references
4. The current file's folder
5. Each entry of ` + "`include_paths`" + ` after ` + "`$base_path[N]`" + ` substitution

## Things you can try
- Show every candidate that was tested:
~~~
$ openinclude resolve --explain --from Shaders/Lit.hlsl Common.hlsli
~~~
- Add the folder holding the file to your configuration:
~~~cue
base_paths: ["C:\\SDK\\"]
include_paths: ["$base_path[0]Include\\"]
~~~`,
	}

	currentFileMissingIssue = &Issue{
		id: CurrentFileMissingId,
		mdMsg: `
# Current file does not exist

The engine project search needs the current file on disk to find the project root.
Unsaved buffers are resolved against the configured include paths only.

## Things you can try
- Save the file and try again
- Check the path passed with ` + "`--from`",
	}

	noIncludeDirectiveIssue = &Issue{
		id: NoIncludeDirectiveId,
		mdMsg: `
# No include directive on this line

The requested line is not an ` + "`#include`" + ` directive with a quoted or angle-bracket target.

## Recognized forms
~~~hlsl
#include "Common.hlsli"
#include <Packages/com.unity.render-pipelines.core/ShaderLibrary/Common.hlsl>
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the openinclude configuration file.

## Configuration file locations:
- Linux: ~/.config/openinclude/config.cue
- macOS: ~/Library/Application Support/openinclude/config.cue
- Windows: %APPDATA%\openinclude\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ openinclude config init
~~~
- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
enabled: true
base_paths: ["/opt/sdk/"]
include_paths: ["$base_path[0]include/"]
editor: command: "code --goto \"$FILE\""
~~~`,
	}

	featureDisabledIssue = &Issue{
		id: FeatureDisabledId,
		mdMsg: `
# Open included file is disabled

The ` + "`enabled`" + ` setting is false, so include references are not opened.

## Things you can try
~~~
$ openinclude config set enabled true
~~~`,
	}

	editorLaunchFailedIssue = &Issue{
		id: EditorLaunchFailedId,
		mdMsg: `
# Could not open the file in your editor

The include was resolved but the editor command failed.

## Things you can try
- Check ` + "`editor.command`" + ` in your configuration; ` + "`$FILE`" + ` and ` + "`$DIR`" + ` are expanded
- Print the path instead:
~~~
$ openinclude open --print --from Shaders/Lit.hlsl --line 3
~~~`,
	}

	settingsImportFailedIssue = &Issue{
		id: SettingsImportFailedId,
		mdMsg: `
# Could not import editor settings

The settings file could not be read. It must be a JSON object (comments and
trailing commas are accepted) with any of these keys:

~~~json
{
    "OpenHeaderEnabled": true,
    "OpenHeaderBasePaths": ["C:\\SDK\\"],
    "OpenHeaderIncludePaths": ["$base_path[0]Include\\"],
}
~~~`,
	}

	issues = map[Id]*Issue{
		includeNotFoundIssue.Id():      includeNotFoundIssue,
		currentFileMissingIssue.Id():   currentFileMissingIssue,
		noIncludeDirectiveIssue.Id():   noIncludeDirectiveIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		featureDisabledIssue.Id():      featureDisabledIssue,
		editorLaunchFailedIssue.Id():   editorLaunchFailedIssue,
		settingsImportFailedIssue.Id(): settingsImportFailedIssue,
	}
)

// Values returns every catalog entry ordered by ID.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, v := range issues {
		values = append(values, v)
	}
	slices.SortFunc(values, func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
