package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodedInternet/gonxt/brick"
	"github.com/CodedInternet/gonxt/comms"
	"github.com/CodedInternet/gonxt/nxt"
	"github.com/CodedInternet/gonxt/transport"
	. "github.com/smartystreets/goconvey/convey"
)

const testConfig = `
version: 1.0.0
transport:
  kind: sim
motors:
  left: A
  arm: B
  right: C
drive:
  left: left
  right: right
`

func TestMain(m *testing.M) {
	dir, err := ioutil.TempDir("", "gonxt")
	if err != nil {
		panic(err)
	}

	ENV.DB, err = openDb(filepath.Join(dir, "test.db"))
	if err != nil {
		panic(err)
	}
	if _, err := setJWTSecret("test-secret"); err != nil {
		panic(err)
	}

	code := m.Run()

	ENV.DB.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

// newTestBrick points ENV at a fresh brick backed by a simulated transport.
func newTestBrick() *transport.Simulated {
	config, err := brick.ParseConfig([]byte(testConfig))
	if err != nil {
		panic(err)
	}

	sim := transport.NewSimulated(nil)
	ENV.Brick, err = brick.NewBrick(nxt.NewRemoteMotorController(sim), config, nil)
	if err != nil {
		panic(err)
	}
	ENV.Conductor = &comms.Conductor{Device: ENV.Brick}

	return sim
}

func bearer(sub string, admin bool) string {
	token, err := newJWT(sub, admin)
	if err != nil {
		panic(err)
	}
	return "Bearer " + token
}

// authHeader carries an admin token.
func authHeader() string {
	return bearer("admin@test.case", true)
}

func operatorHeader() string {
	return bearer("operator@test.case", false)
}

func TestEnsureDbDir(t *testing.T) {
	dir, err := ioutil.TempDir("", "gonxt-dir")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	Convey("Missing parents are created", t, func() {
		dbFile := filepath.Join(dir, "nested", "data", "dev.db")
		So(ensureDbDir(dbFile), ShouldBeNil)

		info, err := os.Stat(filepath.Dir(dbFile))
		So(err, ShouldBeNil)
		So(info.IsDir(), ShouldBeTrue)
	})

	Convey("A file in the way is reported", t, func() {
		blocker := filepath.Join(dir, "blocker")
		So(ioutil.WriteFile(blocker, []byte("x"), 0644), ShouldBeNil)

		err := ensureDbDir(filepath.Join(blocker, "dev.db"))
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "unable to create "+blocker)
	})
}
