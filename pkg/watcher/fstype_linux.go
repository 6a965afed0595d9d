//go:build linux

package watcher

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// statfs f_type magic numbers (linux/magic.h).
const (
	nfsSuperMagic  = 0x6969
	smbSuperMagic  = 0x517b
	cifsSuperMagic = 0xff534d42
	smb2SuperMagic = 0xfe534d42
	fuseSuperMagic = 0x65735546
)

func detectFilesystemType(path string) FilesystemType {
	var st unix.Statfs_t
	target := path
	if err := unix.Statfs(target, &st); err != nil {
		target = filepath.Dir(path)
		if err := unix.Statfs(target, &st); err != nil {
			return FSTypeUnknown
		}
	}

	switch uint32(st.Type) {
	case nfsSuperMagic:
		return FSTypeNFS
	case smbSuperMagic, cifsSuperMagic, smb2SuperMagic:
		return FSTypeSMB
	case fuseSuperMagic:
		if fuseSubtype(target) == "sshfs" {
			return FSTypeSSHFS
		}
		return FSTypeFUSE
	default:
		return FSTypeLocal
	}
}

// fuseSubtype finds the mount covering path in /proc/self/mounts and returns
// the part after "fuse." in its type, e.g. "sshfs".
func fuseSubtype(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	f, err := os.Open("/proc/self/mounts")
	if err != nil {
		return ""
	}
	defer f.Close()

	best, subtype := "", ""
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		mnt, fstype := fields[1], fields[2]
		if !strings.HasPrefix(abs, mnt) || len(mnt) < len(best) {
			continue
		}
		best = mnt
		subtype = strings.TrimPrefix(fstype, "fuse.")
	}
	return subtype
}
