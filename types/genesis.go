package types

import (
	"encoding/json"
	"fmt"
)

// genesisJSON is the embedded genesis fixture: ordinal 0, an all-zero-style
// parent sentinel, one AddAuthority transaction naming the initial authority
// key, and a fixed signature. It is the trust anchor of every chain this
// node builds: it was produced by the original bincode-based signer, so its
// digests are never recomputed against this codebase's canonical encoding
// and its signature is never checked. Changing the fixture is a breaking
// protocol change.
const genesisJSON = `{"header": {"parent_hash": {"multihash": {"code": 27, "size": 32, "digest": [197, 210, 70, 1,
134, 247, 35, 60, 146, 126, 125, 178, 220, 199, 3, 192, 229, 0, 182, 83, 202, 130, 39, 59, 123,
250, 216, 4, 93, 133, 164, 112, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
0, 0, 0, 0, 0, 0, 0, 0, 0, 0]}}, "transactions_hash": {"multihash": {"code": 27, "size": 32,
"digest": [167, 139, 54, 153, 209, 21, 133, 219, 173, 118, 63, 82, 19, 96, 148, 211, 69, 205,
154, 226, 8, 5, 62, 3, 186, 214, 191, 92, 179, 57, 138, 214, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0]}},
"committer": {"peer_id": {"code": 0, "size": 36, "digest": [8, 1, 18, 32, 88, 88, 21, 196, 249,
159, 23, 207, 76, 169, 83, 37, 65, 110, 39, 190, 211, 20, 9, 200, 227, 133, 170, 74, 15, 143, 73,
34, 109, 143, 236, 112, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
0, 0, 0, 0]}}, "timestamp": 1654113168, "ordinal": 0,
"nonce": 281515050492197299129256966776332101400, "hash": {"multihash": {"code": 27, "size": 32,
"digest": [96, 80, 247, 17, 255, 167, 87, 128, 253, 63, 104, 55, 127, 34, 86, 192, 224, 72, 19,
139, 62, 104, 124, 188, 132, 174, 110, 34, 100, 95, 52, 140, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0]}}},
"transactions": [{"submitter": {"peer_id": {"code": 0, "size": 36, "digest": [8, 1, 18, 32, 88,
88, 21, 196, 249, 159, 23, 207, 76, 169, 83, 37, 65, 110, 39, 190, 211, 20, 9, 200, 227, 133,
170, 74, 15, 143, 73, 34, 109, 143, 236, 112, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0]}}, "timestamp": 1654113168,
"payload": {"key": "WFgVxPmfF89MqVMlQW4nvtMUCcjjhapKD49JIm2P7HA=", "type": "AddAuthority"},
"nonce": 118815268505120758368449104977777607430, "hash": {"multihash": {"code": 27, "size": 32,
"digest": [161, 151, 243, 149, 73, 173, 183, 192, 222, 182, 179, 39, 231, 40, 3, 110, 41, 32,
172, 108, 147, 44, 255, 124, 124, 70, 108, 126, 145, 47, 53, 148, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0]}},
"signature": {"signature": [35, 114, 153, 222, 215, 165, 4, 193, 64, 175, 107, 198, 76, 42, 235,
236, 50, 182, 239, 2, 182, 114, 227, 85, 235, 254, 115, 158, 248, 176, 42, 244, 205, 179, 153,
176, 162, 87, 66, 33, 85, 158, 83, 68, 211, 67, 171, 139, 210, 192, 232, 235, 43, 160, 215, 114,
180, 181, 212, 232, 81, 198, 177, 12]}}], "signing_key": "", "signature": {"signature": [130,
125, 232, 51, 119, 196, 80, 102, 37, 164, 81, 189, 84, 221, 77, 88, 86, 99, 126, 154, 190, 214,
97, 73, 101, 15, 173, 43, 135, 217, 140, 193, 162, 111, 112, 37, 46, 96, 32, 83, 133, 146, 201,
48, 172, 242, 3, 92, 230, 234, 196, 220, 45, 165, 43, 189, 22, 78, 240, 226, 215, 111, 68, 15]}}`

// GenesisBlock parses the embedded fixture into a fresh Block value.
func GenesisBlock() (Block, error) {
	var b Block
	if err := json.Unmarshal([]byte(genesisJSON), &b); err != nil {
		return Block{}, fmt.Errorf("parse genesis fixture: %w", err)
	}
	return b, nil
}
