package storage

import (
	"os"
	"reflect"
	"time"
)

// changeTime reads the inode change time from the platform stat structure.
func changeTime(info os.FileInfo) (time.Time, bool) {
	return statTime(info, []string{"Ctim", "Ctimespec"}, "Ctime", "CtimeNsec", "Ctimensec")
}

// accessTime reads the last access time from the platform stat structure.
func accessTime(info os.FileInfo) (time.Time, bool) {
	return statTime(info, []string{"Atim", "Atimespec"}, "Atime", "AtimeNsec", "Atimensec")
}

// statTime looks up a timestamp by field name so the same code serves the
// Linux (Ctim), BSD/Darwin (Ctimespec) and split seconds/nanoseconds layouts.
func statTime(info os.FileInfo, specFields []string, secField string, nsecFields ...string) (time.Time, bool) {
	v, ok := statStruct(info)
	if !ok {
		return time.Time{}, false
	}

	for _, name := range specFields {
		if f := v.FieldByName(name); f.IsValid() {
			if t, ok := timespec(f); ok {
				return t, true
			}
		}
	}

	sec, hasSec := intField(v, secField)
	nsec, hasNsec := intField(v, nsecFields...)
	if hasSec && hasNsec {
		return time.Unix(sec, nsec), true
	}
	return time.Time{}, false
}

func timespec(v reflect.Value) (time.Time, bool) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return time.Time{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return time.Time{}, false
	}
	sec, hasSec := intField(v, "Sec", "Tv_sec")
	nsec, hasNsec := intField(v, "Nsec", "Tv_nsec")
	if !hasSec || !hasNsec {
		return time.Time{}, false
	}
	return time.Unix(sec, nsec), true
}

func statStruct(info os.FileInfo) (reflect.Value, bool) {
	sys := info.Sys()
	if sys == nil {
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(sys)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	return v, true
}

func intField(v reflect.Value, names ...string) (int64, bool) {
	for _, name := range names {
		f := v.FieldByName(name)
		if !f.IsValid() {
			continue
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return f.Int(), true
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return int64(f.Uint()), true
		}
	}
	return 0, false
}
