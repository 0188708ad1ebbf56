package store

import (
	"net/url"
	"reflect"
	"testing"
)

func TestCharacterStorePartialUpdatesAreAdditive(t *testing.T) {
	s := NewCharacterStore(nil)

	s.SetSearchCriteria(CharacterPatch{Name: String("Rick")})
	s.SetSearchCriteria(CharacterPatch{Status: String("Alive")})

	got := s.SearchCriteria()
	want := CharacterCriteria{Name: "Rick", Status: "Alive"}
	if got != want {
		t.Errorf("SearchCriteria() = %+v, want %+v", got, want)
	}
}

func TestCharacterStoreSetOverwritesPresentFields(t *testing.T) {
	s := NewCharacterStore(nil)
	s.SetSearchCriteria(CharacterPatch{Name: String("Rick"), Species: String("Human")})

	// An explicit empty string is a value, not "undefined".
	s.SetSearchCriteria(CharacterPatch{Name: String(""), Gender: String("Male")})

	want := CharacterCriteria{Species: "Human", Gender: "Male"}
	if got := s.SearchCriteria(); got != want {
		t.Errorf("SearchCriteria() = %+v, want %+v", got, want)
	}
}

func TestCharacterStoreSearchParams(t *testing.T) {
	s := NewCharacterStore(nil)

	if got := s.SearchParams(); len(got) != 0 {
		t.Errorf("fresh SearchParams() = %v, want empty", got)
	}

	s.SetSearchCriteria(CharacterPatch{Name: String("Rick"), Gender: String("Male")})
	want := map[string]string{"name": "Rick", "gender": "Male"}
	if got := s.SearchParams(); !reflect.DeepEqual(got, want) {
		t.Errorf("SearchParams() = %v, want %v", got, want)
	}

	for k, v := range s.SearchParams() {
		if v == "" {
			t.Errorf("SearchParams() contains empty key %q", k)
		}
	}
}

func TestCharacterStoreClear(t *testing.T) {
	s := NewCharacterStore(nil)
	s.SetSearchCriteria(CharacterPatch{
		Name:    String("Rick"),
		Status:  String("Alive"),
		Species: String("Human"),
		Gender:  String("Male"),
	})

	s.ClearSearchCriteria()

	if got := s.SearchParams(); len(got) != 0 {
		t.Errorf("SearchParams() after clear = %v, want empty", got)
	}
	if got := s.SearchCriteria(); got != (CharacterCriteria{}) {
		t.Errorf("SearchCriteria() after clear = %+v", got)
	}
	if got := s.Encode(); got != "" {
		t.Errorf("Encode() after clear = %q", got)
	}
}

func TestCharacterStoreSubscribe(t *testing.T) {
	s := NewCharacterStore(nil)

	var seen []CharacterCriteria
	unsubscribe := s.Subscribe(func(c CharacterCriteria) { seen = append(seen, c) })

	s.SetSearchCriteria(CharacterPatch{Name: String("Rick")})
	s.SetSearchCriteria(CharacterPatch{Name: String("Rick")}) // unchanged
	s.SetSearchCriteria(CharacterPatch{})                     // nothing present
	unsubscribe()
	s.SetSearchCriteria(CharacterPatch{Status: String("Dead")})

	if len(seen) != 1 || seen[0].Name != "Rick" {
		t.Errorf("notifications = %+v, want one with Name=Rick", seen)
	}
}

func TestCharacterStoreEncodeAndLoadQuery(t *testing.T) {
	s := NewCharacterStore(nil)
	s.SetSearchCriteria(CharacterPatch{Status: String("Alive"), Name: String("Rick Sanchez")})

	if got, want := s.Encode(), "name=Rick+Sanchez&status=Alive"; got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}

	q, _ := url.ParseQuery("species=Alien&page=2&status=")
	s.LoadQuery(q)

	want := CharacterCriteria{Name: "Rick Sanchez", Species: "Alien"}
	if got := s.SearchCriteria(); got != want {
		t.Errorf("after LoadQuery = %+v, want %+v", got, want)
	}
}

func TestCharacterStoreApplyIgnoresUnknownAndNil(t *testing.T) {
	s := NewCharacterStore(nil)
	s.SetSearchCriteria(CharacterPatch{Name: String("Rick")})

	s.Apply(map[string]*string{"name": nil, "planet": String("Earth"), "status": String("Alive")})

	want := map[string]string{"name": "Rick", "status": "Alive", "species": "", "gender": ""}
	if got := s.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot() = %v, want %v", got, want)
	}
}

func TestCharacterStoreSearchCriteriaIsACopy(t *testing.T) {
	s := NewCharacterStore(nil)
	c := s.SearchCriteria()
	c.Name = "mutated"

	if s.SearchCriteria().Name != "" {
		t.Error("mutating the returned criteria changed the store")
	}
}
