package ctype

import (
	"github.com/joshuapare/memkit/pkg/types"
)

// typedef aliases name to a type already in the table.
type typedef struct {
	name, target string
}

// osOverlays lists, per OS, the overlays applied in order. Later entries may
// refer to names defined by earlier ones, and may redefine them.
var osOverlays = map[types.OS][][]typedef{
	types.OSUnix:    {unixTypedefs},
	types.OSBSD:     {unixTypedefs, bsdTypedefs},
	types.OSFreeBSD: {unixTypedefs, bsdTypedefs, freebsdTypedefs},
	types.OSOpenBSD: {unixTypedefs, bsdTypedefs, openbsdTypedefs},
	types.OSNetBSD:  {unixTypedefs, bsdTypedefs, netbsdTypedefs},
	types.OSMacOS:   {unixTypedefs, bsdTypedefs, macosTypedefs},
	types.OSLinux:   {unixTypedefs, linuxTypedefs},
	types.OSWindows: {windowsTypedefs},
}

var unixTypedefs = []typedef{
	{"size_t", "ulong"},
	{"ssize_t", "long"},
	{"ptrdiff_t", "long"},
	{"intmax_t", "long_long"},
	{"uintmax_t", "ulong_long"},
	{"off_t", "long"},
	{"off64_t", "long_long"},
	{"pid_t", "int32"},
	{"uid_t", "uint32"},
	{"gid_t", "uint32"},
	{"id_t", "uint32"},
	{"mode_t", "uint32"},
	{"dev_t", "ulong"},
	{"ino_t", "ulong"},
	{"nlink_t", "ulong"},
	{"blksize_t", "long"},
	{"blkcnt_t", "long"},
	{"time_t", "long"},
	{"clock_t", "long"},
	{"suseconds_t", "long"},
	{"useconds_t", "uint32"},
	{"key_t", "int32"},
	{"socklen_t", "uint32"},
	{"sa_family_t", "uint16"},
	{"in_addr_t", "uint32_be"},
	{"in_port_t", "uint16_be"},
	{"wchar_t", "int32"},
	{"wint_t", "int32"},
	{"caddr_t", "pointer"},
}

var bsdTypedefs = []typedef{
	{"u_char", "uchar"},
	{"u_short", "ushort"},
	{"u_int", "uint"},
	{"u_long", "ulong"},
	{"sa_family_t", "uint8"},
	{"mode_t", "uint16"},
	{"dev_t", "uint32"},
	{"nlink_t", "uint16"},
	{"off_t", "int64"},
	{"blkcnt_t", "int64"},
	{"segsz_t", "long"},
	{"fixpt_t", "uint32"},
}

var freebsdTypedefs = []typedef{
	{"ino_t", "uint64"},
	{"dev_t", "uint64"},
	{"nlink_t", "uint64"},
	{"time_t", "int64"},
	{"lwpid_t", "int32"},
	{"cpuwhich_t", "int32"},
}

var openbsdTypedefs = []typedef{
	{"ino_t", "uint64"},
	{"dev_t", "int32"},
	{"nlink_t", "uint32"},
	{"time_t", "int64"},
	{"clockid_t", "int32"},
}

var netbsdTypedefs = []typedef{
	{"ino_t", "uint64"},
	{"dev_t", "uint64"},
	{"nlink_t", "uint32"},
	{"time_t", "int64"},
	{"lwpid_t", "int32"},
}

var macosTypedefs = []typedef{
	{"ino_t", "uint64"},
	{"dev_t", "int32"},
	{"blksize_t", "int32"},
	{"mach_port_t", "uint32"},
	{"kern_return_t", "int32"},
	{"vm_size_t", "uintptr"},
}

var linuxTypedefs = []typedef{
	{"dev_t", "ulong_long"},
	{"loff_t", "long_long"},
	{"clockid_t", "int32"},
	{"timer_t", "pointer"},
	{"__s8", "int8"},
	{"__u8", "uint8"},
	{"__s16", "int16"},
	{"__u16", "uint16"},
	{"__s32", "int32"},
	{"__u32", "uint32"},
	{"__s64", "int64"},
	{"__u64", "uint64"},
	{"__be16", "uint16_be"},
	{"__be32", "uint32_be"},
	{"__be64", "uint64_be"},
	{"__le16", "uint16_le"},
	{"__le32", "uint32_le"},
	{"__le64", "uint64_le"},
}

// windowsTypedefs starts by shrinking long to 4 bytes (LLP64).
var windowsTypedefs = []typedef{
	{"long", "int32"},
	{"ulong", "uint32"},
	{"size_t", "uintptr"},
	{"ssize_t", "intptr"},
	{"ptrdiff_t", "intptr"},
	{"off_t", "int32"},
	{"time_t", "int64"},
	{"wchar_t", "uint16"},
	{"BYTE", "uint8"},
	{"BOOLEAN", "uint8"},
	{"CHAR", "char"},
	{"UCHAR", "uchar"},
	{"WCHAR", "uint16"},
	{"SHORT", "int16"},
	{"USHORT", "uint16"},
	{"WORD", "uint16"},
	{"ATOM", "uint16"},
	{"INT", "int32"},
	{"UINT", "uint32"},
	{"BOOL", "int32"},
	{"LONG", "int32"},
	{"ULONG", "uint32"},
	{"DWORD", "uint32"},
	{"HRESULT", "int32"},
	{"LONGLONG", "int64"},
	{"ULONGLONG", "uint64"},
	{"QWORD", "uint64"},
	{"DWORD64", "uint64"},
	{"FLOAT", "float"},
	{"HANDLE", "pointer"},
	{"HMODULE", "pointer"},
	{"HINSTANCE", "pointer"},
	{"HWND", "pointer"},
	{"LPVOID", "pointer"},
	{"PVOID", "pointer"},
	{"INT_PTR", "intptr"},
	{"UINT_PTR", "uintptr"},
	{"LONG_PTR", "intptr"},
	{"ULONG_PTR", "uintptr"},
	{"DWORD_PTR", "uintptr"},
	{"SIZE_T", "uintptr"},
	{"SSIZE_T", "intptr"},
	{"WPARAM", "uintptr"},
	{"LPARAM", "intptr"},
	{"LRESULT", "intptr"},
}
