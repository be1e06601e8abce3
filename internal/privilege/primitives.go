package privilege

// Primitives mirrors the OS calls that read and change process identity.
// Setters must apply to every thread of the process.
type Primitives interface {
	Getresuid() (ruid, euid, suid int)
	Getresgid() (rgid, egid, sgid int)
	Getgroups() ([]int, error)
	Setgroups(gids []int) error
	Setresgid(rgid, egid, sgid int) error
	Setresuid(ruid, euid, suid int) error
}
