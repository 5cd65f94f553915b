// Package doctor inspects an installation the way the launcher sees it and
// reports each requirement as a status line ([ OK ], [MISS], [WARN], [FAIL],
// [FIX ]). It can also repair the one thing that commonly breaks after a copy:
// a venv interpreter that lost its executable bit.
package doctor
