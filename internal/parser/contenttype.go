package parser

import "fmt"

// ContentType is what kind of release a thread is. The integer values are the
// codes written to the cache and must never be reused.
type ContentType int

const (
	TYPE_MISC ContentType = 1

	TYPE_CHEAT_MOD ContentType = 2
	TYPE_MOD       ContentType = 3
	TYPE_TOOL      ContentType = 4

	TYPE_READ_ME  ContentType = 5
	TYPE_REQUEST  ContentType = 6
	TYPE_TUTORIAL ContentType = 7

	TYPE_SITERIP    ContentType = 8
	TYPE_COLLECTION ContentType = 9
	TYPE_MANGA      ContentType = 10
	TYPE_COMICS     ContentType = 11
	TYPE_VIDEO      ContentType = 12
	TYPE_GIF        ContentType = 13
	TYPE_PINUP      ContentType = 14
	TYPE_CG         ContentType = 15

	TYPE_ADRIFT        ContentType = 16
	TYPE_FLASH         ContentType = 17
	TYPE_HTML          ContentType = 18
	TYPE_JAVA          ContentType = 19
	TYPE_OTHERS        ContentType = 20
	TYPE_QSP           ContentType = 21
	TYPE_RAGS          ContentType = 22
	TYPE_RPGM          ContentType = 23
	TYPE_RENPY         ContentType = 24
	TYPE_TADS          ContentType = 25
	TYPE_UNITY         ContentType = 26
	TYPE_UNREAL_ENGINE ContentType = 27
	TYPE_WEBGL         ContentType = 28
	TYPE_WOLF_RPG      ContentType = 29
)

// Category groups content types into the bands used for display.
type Category int

const (
	CATEGORY_MISC Category = iota + 1
	CATEGORY_MODIFIER
	CATEGORY_POST
	CATEGORY_MEDIA
	CATEGORY_GAME
)

func (c Category) String() string {
	switch c {
	case CATEGORY_MODIFIER:
		return "Modifier"
	case CATEGORY_POST:
		return "Post"
	case CATEGORY_MEDIA:
		return "Media"
	case CATEGORY_GAME:
		return "Game"
	default:
		return "Misc"
	}
}

func (t ContentType) String() string {
	switch t {
	case TYPE_MISC:
		return "Misc"
	case TYPE_CHEAT_MOD:
		return "Cheat Mod"
	case TYPE_MOD:
		return "Mod"
	case TYPE_TOOL:
		return "Tool"
	case TYPE_READ_ME:
		return "READ ME"
	case TYPE_REQUEST:
		return "Request"
	case TYPE_TUTORIAL:
		return "Tutorial"
	case TYPE_SITERIP:
		return "SiteRip"
	case TYPE_COLLECTION:
		return "Collection"
	case TYPE_MANGA:
		return "Manga"
	case TYPE_COMICS:
		return "Comics"
	case TYPE_VIDEO:
		return "Video"
	case TYPE_GIF:
		return "GIF"
	case TYPE_PINUP:
		return "Pinup"
	case TYPE_CG:
		return "CG"
	case TYPE_ADRIFT:
		return "ADRIFT"
	case TYPE_FLASH:
		return "Flash"
	case TYPE_HTML:
		return "HTML"
	case TYPE_JAVA:
		return "Java"
	case TYPE_OTHERS:
		return "Others"
	case TYPE_QSP:
		return "QSP"
	case TYPE_RAGS:
		return "RAGS"
	case TYPE_RPGM:
		return "RPGM"
	case TYPE_RENPY:
		return "Ren'Py"
	case TYPE_TADS:
		return "Tads"
	case TYPE_UNITY:
		return "Unity"
	case TYPE_UNREAL_ENGINE:
		return "Unreal Engine"
	case TYPE_WEBGL:
		return "WebGL"
	case TYPE_WOLF_RPG:
		return "Wolf RPG"
	default:
		return fmt.Sprintf("ContentType(%d)", int(t))
	}
}

// Category returns the band the content type belongs to.
func (t ContentType) Category() Category {
	switch t {
	case TYPE_CHEAT_MOD, TYPE_MOD, TYPE_TOOL:
		return CATEGORY_MODIFIER
	case TYPE_READ_ME, TYPE_REQUEST, TYPE_TUTORIAL:
		return CATEGORY_POST
	case TYPE_SITERIP, TYPE_COLLECTION, TYPE_MANGA, TYPE_COMICS,
		TYPE_VIDEO, TYPE_GIF, TYPE_PINUP, TYPE_CG:
		return CATEGORY_MEDIA
	case TYPE_ADRIFT, TYPE_FLASH, TYPE_HTML, TYPE_JAVA, TYPE_OTHERS,
		TYPE_QSP, TYPE_RAGS, TYPE_RPGM, TYPE_RENPY, TYPE_TADS, TYPE_UNITY,
		TYPE_UNREAL_ENGINE, TYPE_WEBGL, TYPE_WOLF_RPG:
		return CATEGORY_GAME
	default:
		return CATEGORY_MISC
	}
}

// Color is the label color the site renders the prefix with, as a css hex
// color.
func (t ContentType) Color() string {
	switch t {
	case TYPE_CHEAT_MOD, TYPE_MOD, TYPE_TOOL:
		return "#ba4545"
	case TYPE_READ_ME:
		return "#dc143c"
	case TYPE_REQUEST, TYPE_TUTORIAL:
		return "#d6d6d6"
	case TYPE_SITERIP, TYPE_COLLECTION, TYPE_MANGA, TYPE_COMICS,
		TYPE_VIDEO, TYPE_GIF, TYPE_PINUP, TYPE_CG:
		return "#615aa5"
	case TYPE_ADRIFT:
		return "#2196f3"
	case TYPE_FLASH:
		return "#616161"
	case TYPE_HTML:
		return "#689f38"
	case TYPE_JAVA:
		return "#52a6b0"
	case TYPE_OTHERS:
		return "#8bc34a"
	case TYPE_QSP:
		return "#d32f2f"
	case TYPE_RAGS:
		return "#ff9800"
	case TYPE_RPGM:
		return "#2196f3"
	case TYPE_RENPY:
		return "#b069e8"
	case TYPE_TADS:
		return "#2196f3"
	case TYPE_UNITY:
		return "#fe5901"
	case TYPE_UNREAL_ENGINE:
		return "#0d47a1"
	case TYPE_WEBGL:
		return "#fe5901"
	case TYPE_WOLF_RPG:
		return "#4caf50"
	default:
		return "#808080"
	}
}

// Status is the development state of a release.
type Status int

const (
	STATUS_NORMAL    Status = 1
	STATUS_COMPLETED Status = 2
	STATUS_ON_HOLD   Status = 3
	STATUS_ABANDONED Status = 4
)

func (s Status) String() string {
	switch s {
	case STATUS_NORMAL:
		return "Normal"
	case STATUS_COMPLETED:
		return "Completed"
	case STATUS_ON_HOLD:
		return "OnHold"
	case STATUS_ABANDONED:
		return "Abandoned"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}
