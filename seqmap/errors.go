package seqmap

import "errors"

// ErrKeyExists is returned by TryInsert when the key is already present.
var ErrKeyExists = errors.New("key already exists")
