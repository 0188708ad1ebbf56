// Package store provides the session-scoped search-criteria stores.
//
// Each store owns its fields and is the only writer of them. Readers either
// call the getters or subscribe explicitly:
//
//	sess := store.NewSession(logger)
//	unsubscribe := sess.Character.Subscribe(func(c store.CharacterCriteria) {
//	    render(c)
//	})
//	defer unsubscribe()
//
//	sess.Character.SetSearchCriteria(store.CharacterPatch{Name: store.String("Rick")})
//	sess.Character.SetSearchCriteria(store.CharacterPatch{Status: store.String("Alive")})
//	sess.Character.SearchParams() // map[name:Rick status:Alive]
//
// An unset field is always the empty string. Setters merge: a nil patch field
// leaves the stored value alone. Serializers never emit empty fields.
//
// Stores are plain values created per session (see Session); there is no
// package-level state.
package store
