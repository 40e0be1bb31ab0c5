// Package vulkan implements the Linux/Vulkan GPU backend from §4.3: a
// cgo driver that links the system Vulkan loader, uploads a batch into
// host-visible storage buffers, dispatches a compute shader, and reads
// back a match bitmap plus an atomic match count.
//
// Grounded on the teacher's cgo-availability-gated matcher construction
// (hyperscan_availability_cgo.go / _nocgo.go / _stub.go) and on the
// corpus's other cgo-against-a-system-library idiom (linking a vendor
// .so/.dylib directly rather than vendoring a C library).
package vulkan

// matchNamesShaderSource is the GLSL compute shader source for
// -name/-iname/-path matching, compiled to SPIR-V on first dispatch by
// libshaderc, which this package's shim links. One invocation handles
// one candidate name, running the
// identical two-cursor backtracking algorithm as internal/glob.Match.
const matchNamesShaderSource = `
#version 450
layout(local_size_x = 256) in;

layout(set = 0, binding = 0, std140) uniform Config {
    uint num_names;
    uint pattern_len;
    uint match_path;
    uint case_insensitive;
    uint period;
} cfg;

layout(set = 0, binding = 1, std430) readonly buffer Pattern { uint8_t pattern[]; };
layout(set = 0, binding = 2, std430) readonly buffer Names { uint8_t names[]; };
layout(set = 0, binding = 3, std430) readonly buffer Offsets { uint offsets[]; };
layout(set = 0, binding = 4, std430) readonly buffer Lengths { uint lengths[]; };
layout(set = 0, binding = 5, std430) writeonly buffer Results { uint8_t results[]; };
layout(set = 0, binding = 6, std430) buffer MatchCount { uint match_count; };

uint8_t foldLower(uint8_t c) {
    if (c >= uint8_t(65) && c <= uint8_t(90)) { return c + uint8_t(32); }
    return c;
}

void main() {
    uint gid = gl_GlobalInvocationID.x;
    if (gid >= cfg.num_names) { return; }

    uint base = offsets[gid];
    uint textLen = lengths[gid];

    // Without match_path only the basename is matched, as on the CPU.
    if (cfg.match_path == 0u) {
        for (uint i = textLen; i > 0u; i--) {
            if (names[base + i - 1u] == uint8_t(47)) { base += i; textLen -= i; break; }
        }
    }

    if (cfg.period != 0 && textLen > 0 && names[base] == uint8_t(46) &&
        (cfg.pattern_len == 0 || pattern[0] != uint8_t(46))) {
        results[gid] = uint8_t(0);
        return;
    }

    uint pi = 0, ni = 0, starPi = 0, starNi = 0;
    bool hasStar = false;

    while (ni < textLen) {
        bool matched = false;
        if (pi < cfg.pattern_len) {
            uint8_t pc = pattern[pi];
            if (pc == uint8_t(42)) { // '*'
                starPi = pi; starNi = ni; hasStar = true;
                pi += 1;
                continue;
            } else if (pc == uint8_t(63)) { // '?'
                pi += 1; ni += 1; matched = true;
            } else {
                uint8_t a = pc, b = names[base + ni];
                if (cfg.case_insensitive != 0) { a = foldLower(a); b = foldLower(b); }
                if (a == b) { pi += 1; ni += 1; matched = true; }
            }
        }
        if (matched) { continue; }
        if (hasStar) {
            pi = starPi + 1;
            starNi += 1;
            ni = starNi;
            continue;
        }
        results[gid] = uint8_t(0);
        return;
    }

    while (pi < cfg.pattern_len && pattern[pi] == uint8_t(42)) { pi += 1; }
    bool ok = (pi == cfg.pattern_len);
    results[gid] = ok ? uint8_t(1) : uint8_t(0);
    if (ok) {
        atomicAdd(match_count, 1);
    }
}
`

// regexMatchShaderSource runs the Thompson-NFA byte program against every
// name in the batch. It is the GLSL port of internal/gpu/metal's
// regexMatchKernelSource: same packed NfaState layout (uvec3 per state,
// matching Program.EncodeStates), same fixed MAX_WORDS-word bitset thread
// sets held in invocation-local arrays, same per-byte epsilon-closure
// stepping loop, so a dispatch to either backend agrees bit for bit with
// internal/regex/exec.go's FullMatch (§8).
const regexMatchShaderSource = `
#version 450
#extension GL_ARB_gpu_shader_int64 : require
layout(local_size_x = 256) in;

layout(set = 0, binding = 0, std140) uniform RegexConfig {
    uint num_names;
    uint num_states;
    uint start_state;
    uint flags;
} cfg;

layout(set = 0, binding = 1, std430) readonly buffer States { uvec3 states[]; };
layout(set = 0, binding = 2, std430) readonly buffer Bitmaps { uint bitmaps[]; };
layout(set = 0, binding = 3, std430) readonly buffer Names { uint8_t names[]; };
layout(set = 0, binding = 4, std430) readonly buffer Offsets { uint offsets[]; };
layout(set = 0, binding = 5, std430) readonly buffer Lengths { uint lengths[]; };
layout(set = 0, binding = 6, std430) writeonly buffer Results { uint8_t results[]; };
layout(set = 0, binding = 7, std430) buffer MatchCount { uint match_count; };

const uint MAX_WORDS = 4u; // 256 states / 64 bits

bool is_word_byte(uint8_t b) {
    return b == uint8_t(95) || (b >= uint8_t(97) && b <= uint8_t(122)) ||
        (b >= uint8_t(65) && b <= uint8_t(90)) || (b >= uint8_t(48) && b <= uint8_t(57));
}

uint8_t foldLowerRegex(uint8_t c) {
    if (c >= uint8_t(65) && c <= uint8_t(90)) { return c + uint8_t(32); }
    return c;
}

void main() {
    uint gid = gl_GlobalInvocationID.x;
    if (gid >= cfg.num_names) { return; }

    uint base = offsets[gid];
    uint textLen = lengths[gid];
    bool fold = (cfg.flags & 4u) != 0u;

    uint64_t cur[4] = uint64_t[4](0ul, 0ul, 0ul, 0ul);
    uint64_t nxt[4];
    uint stack[256];

    for (uint pos = 0u; pos <= textLen; pos++) {
        if (pos == 0u) {
            int sp = 0;
            stack[sp++] = cfg.start_state;
            while (sp > 0) {
                uint id = stack[--sp];
                uint word = id / 64u, bit = id % 64u;
                if (((cur[word] >> bit) & 1ul) != 0ul) { continue; }
                cur[word] |= (1ul << bit);
                uint ty = states[id].x & 0xFFu;
                uint out = (states[id].x >> 16) & 0xFFFFu;
                uint out2 = states[id].y & 0xFFFFu;
                if (ty == 3u) { stack[sp++] = out; stack[sp++] = out2; }        // split
                else if (ty == 5u || ty == 6u) { stack[sp++] = out; }          // group start/end
                else if (ty == 9u) { if (pos == 0u) stack[sp++] = out; }       // line start
                else if (ty == 10u) { if (textLen == 0u) stack[sp++] = out; }  // line end
                else if (ty == 7u) {                                          // word boundary
                    bool after = textLen > 0u && is_word_byte(names[base]);
                    if (after) stack[sp++] = out;                             // before is false at pos 0
                } else if (ty == 8u) {                                        // not word boundary
                    bool after = textLen > 0u && is_word_byte(names[base]);
                    if (!after) stack[sp++] = out;
                }
            }
        }
        if (pos == textLen) { break; }

        for (uint w = 0u; w < MAX_WORDS; w++) { nxt[w] = 0ul; }
        uint8_t c = names[base + pos];

        for (uint id = 0u; id < cfg.num_states; id++) {
            uint word = id / 64u, bit = id % 64u;
            if (((cur[word] >> bit) & 1ul) == 0ul) { continue; }
            uint ty = states[id].x & 0xFFu;
            uint out = (states[id].x >> 16) & 0xFFFFu;
            bool advance = false;
            if (ty == 0u) { // literal
                uint8_t lit = uint8_t((states[id].y >> 16) & 0xFFu);
                uint8_t a = lit, b = c;
                if (fold) { a = foldLowerRegex(a); b = foldLowerRegex(b); }
                advance = (a == b);
            } else if (ty == 1u) { // char class
                uint off = states[id].z;
                uint bitWord = bitmaps[off + uint(c) / 32u];
                bool hit = ((bitWord >> (uint(c) % 32u)) & 1u) != 0u;
                uint flags = (states[id].x >> 8) & 0xFFu;
                advance = (flags & 1u) != 0u ? !hit : hit;
            } else if (ty == 2u || ty == 11u) { // dot / any
                advance = true;
            }
            if (advance) {
                int sp = 0;
                stack[sp++] = out;
                while (sp > 0) {
                    uint sid = stack[--sp];
                    uint sw = sid / 64u, sb = sid % 64u;
                    if (((nxt[sw] >> sb) & 1ul) != 0ul) { continue; }
                    nxt[sw] |= (1ul << sb);
                    uint sty = states[sid].x & 0xFFu;
                    uint sout = (states[sid].x >> 16) & 0xFFFFu;
                    uint sout2 = states[sid].y & 0xFFFFu;
                    if (sty == 3u) { stack[sp++] = sout; stack[sp++] = sout2; }
                    else if (sty == 5u || sty == 6u) { stack[sp++] = sout; }
                    else if (sty == 10u) { if (pos + 1u == textLen) stack[sp++] = sout; }
                    else if (sty == 7u || sty == 8u) {                         // word boundary / not
                        bool before = is_word_byte(c);                         // byte just consumed
                        bool after = (pos + 1u < textLen) && is_word_byte(names[base + pos + 1u]);
                        bool boundary = (before != after);
                        if (sty == 7u ? boundary : !boundary) stack[sp++] = sout;
                    }
                }
            }
        }
        for (uint w = 0u; w < MAX_WORDS; w++) { cur[w] = nxt[w]; }
    }

    bool matched = false;
    for (uint id = 0u; id < cfg.num_states; id++) {
        uint word = id / 64u, bit = id % 64u;
        if (((cur[word] >> bit) & 1ul) == 0ul) { continue; }
        uint ty = states[id].x & 0xFFu;
        if (ty == 4u) { matched = true; break; } // match
    }
    results[gid] = matched ? uint8_t(1) : uint8_t(0);
    if (matched) {
        atomicAdd(match_count, 1u);
    }
}
`
