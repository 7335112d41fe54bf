package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Sandalmoth/ecs-experiments-sub002/pkg/leveled"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	opts := leveled.DefaultOptions()
	opts.ActiveCapacity = 4
	opts.WarmThreshold = 8
	opts.Logger = logger

	// One storage per attribute type; here entities carry a health value.
	store, err := leveled.New[float32](opts)
	if err != nil {
		panic(err)
	}
	defer store.Close()

	store.Put(1, 100.0)
	store.Put(3, 75.5)
	store.Put(4, 50.0)
	if err := store.Compact(); err != nil {
		panic(err)
	}

	store.Put(2, 25.0)
	store.Delete(4) // tombstone shadows the copy compacted into warm

	for e := uint64(1); e <= 4; e++ {
		if hp, ok := store.Get(e); ok {
			fmt.Printf("entity %d: health %.1f\n", e, *hp)
		} else {
			fmt.Printf("entity %d: gone\n", e)
		}
	}

	if err := store.Compact(); err != nil {
		panic(err)
	}
	st := store.Stats()
	fmt.Printf("levels: active %d/%d, warm %d, cold %d (advisory count %d)\n",
		st.ActiveLen, st.ActiveCap, st.WarmLen, st.ColdLen, st.Count)
}
