package hostfs

// Well-known account file locations, relative to the root.
const (
	EtcPasswdRel = "etc/passwd"
	EtcShadowRel = "etc/shadow"
	EtcGroupRel  = "etc/group"
)
