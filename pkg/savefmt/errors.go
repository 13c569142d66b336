package savefmt

import "errors"

var (
	ErrIncompatibleVersion = errors.New("savegame from an incompatible version")
	ErrOtherGame           = errors.New("savegame from another game build")
	ErrOtherOS             = errors.New("savegame from another operating system")
	ErrOtherArch           = errors.New("savegame from another architecture")
	ErrRecordSize          = errors.New("mismatched entity record size")
	ErrCorrupt             = errors.New("corrupt savegame")
)
